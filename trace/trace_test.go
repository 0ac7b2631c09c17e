package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brilles/Computer-Architecture/cpu"
	"github.com/brilles/Computer-Architecture/emulator"
)

var print8 = []string{
	"10000010 # LDI R0,8",
	"00000000",
	"00001000",
	"01000111 # PRN R0",
	"00000000",
	"00000001 # HLT",
}

func doTrace(tr *Tracer, program []string, t *testing.T) (err error) {
	assert := assert.New(t)

	ld := &cpu.Loader{}
	prog, err := ld.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Cpu.Output = &bytes.Buffer{}
	emu.Trace = tr
	assert.NoError(emu.Reset())

	err = emu.Run(context.Background())
	return
}

func TestTracer(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	tr := &Tracer{Output: out}

	assert.NoError(doTrace(tr, print8, t))
	assert.Equal([]string{
		"TRACE: 00 | 82 00 08 | 00 00 00 00 00 00 00 F4 | - LDI 0x00 0x08",
		"TRACE: 03 | 47 00 00 | 08 00 00 00 00 00 00 F4 | - PRN 0x00",
		"TRACE: 05 | 01 00 00 | 08 00 00 00 00 00 00 F4 | - HLT",
		"",
	}, strings.Split(out.String(), "\n"))
}

func TestTracer_Highlight(t *testing.T) {
	assert := assert.New(t)

	tr := &Tracer{Highlight: true}
	c := cpu.NewCpu()
	ins := cpu.Instruction{Code: cpu.HLT}

	line := tr.Format(c, ins)
	assert.NotContains(line, ansiBold)

	c.Register[2] = 0x10
	line = tr.Format(c, ins)
	assert.Contains(line, " "+ansiBold+"10"+ansiReset+" ")
	assert.Equal(1, strings.Count(line, ansiBold))

	line = tr.Format(c, ins)
	assert.NotContains(line, ansiBold)
}

func TestTracer_Watch(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		expr  string
		lines int
	}){
		{"all", "True", 3},
		{"none", "False", 0},
		{"opcode", "ir == PRN", 1},
		{"register", "r[R0] == 8", 2},
		{"pc", "pc >= 3 and fl == FL_NONE", 2},
		{"stack", "sp == STACK_TOP and ticks == 0", 1},
		{"line", "line == 6", 1},
		{"operand", "ir == LDI and b == 8 and a == R0", 1},
	}

	for _, entry := range table {
		out := &bytes.Buffer{}
		tr := &Tracer{Output: out, Watch: &Watch{Expr: entry.expr}}

		assert.NoError(doTrace(tr, print8, t), entry.name)
		assert.Equal(entry.lines, strings.Count(out.String(), "TRACE:"), entry.name)
	}
}

func TestTracer_WatchError(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"no_such_name == 1",
		"1 +",
		"1 // 0",
	}

	for _, expr := range table {
		out := &bytes.Buffer{}
		tr := &Tracer{Output: out, Watch: &Watch{Expr: expr}}

		err := doTrace(tr, print8, t)
		assert.ErrorIs(err, ErrWatch, expr)
		assert.Empty(out.String(), expr)
	}
}
