package trace

import (
	"errors"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/brilles/Computer-Architecture/cpu"
	"github.com/brilles/Computer-Architecture/emulator"
)

// Watch is a starlark expression evaluated before each instruction.
//
// The expression sees the integer emulator defines (mnemonics, R0-R7,
// SP, STACK_TOP, FL_* and so on) and the machine state:
//
//	pc     address of the instruction
//	ir     opcode
//	a, b   operands
//	fl     FL, compare with FL_EQUAL, FL_LESS, FL_GREATER
//	sp     stack pointer
//	r      list of registers
//	ticks  instructions executed so far
//	line   source line of the instruction, 0 if unknown
//
// For example: "ir == CALL and r[R0] > 3".
type Watch struct {
	Expr string
}

// Match evaluates the watch for ins about to execute.
func (w *Watch) Match(emu *emulator.Emulator, ins cpu.Instruction) (ok bool, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrWatch, err)
		}
	}()

	thread := starlark.Thread{Name: "watch"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range emu.Defines() {
		value, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer defines.
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	c := emu.Cpu
	regs := make([]starlark.Value, len(c.Register))
	for n, val := range c.Register {
		regs[n] = starlark.MakeInt(int(val))
	}
	r := starlark.NewList(regs)
	r.Freeze()

	pred["pc"] = starlark.MakeInt(c.Pc)
	pred["ir"] = starlark.MakeInt(int(ins.Code))
	pred["a"] = starlark.MakeInt(int(ins.A))
	pred["b"] = starlark.MakeInt(int(ins.B))
	pred["fl"] = starlark.MakeInt(int(c.Fl))
	pred["sp"] = starlark.MakeInt(int(c.Register[cpu.SP]))
	pred["r"] = r
	pred["ticks"] = starlark.MakeInt(c.Ticks)
	pred["line"] = starlark.MakeInt(emu.LineNo())

	prog := "rc=(" + w.Expr + ")\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "watch", prog, pred)
	if err != nil {
		return
	}

	rc, found := dict["rc"]
	if !found {
		err = ErrWatchResult
		return
	}

	ok = bool(rc.Truth())
	return
}
