// Copyright 2026, The Computer-Architecture Authors

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/brilles/Computer-Architecture/cpu"
	"github.com/brilles/Computer-Architecture/internal"
)

// Tracer is called before each instruction executes.
type Tracer interface {
	Trace(emu *Emulator, ins cpu.Instruction) error
}

// Emulator state. CPU + loaded program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the loaded program image.

	Trace Tracer // Optional per-instruction tracer.
	Limit int    // Maximum instructions to execute, 0 for no limit.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"LIMIT": fmt.Sprintf("%d", emu.Limit),
	}

	return internal.IterSeq2Concat(maps.All(defines),
		emu.Cpu.Defines(),
	)
}

// Reset the CPU and load the program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Program.Bytes())
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d bytes", emu.Program.Len())
	}

	return
}

// LineNo returns the source line number of the instruction at the PC.
func (emu *Emulator) LineNo() int {
	line := emu.Program.Debug(emu.Cpu.Pc)
	if line == nil {
		return 0
	}

	return line.LineNo
}

// Tick performs a single instruction of the emulator.
// done is set once the CPU has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	if !emu.Cpu.Running {
		done = true
		return
	}

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			emu.Cpu.Running = false
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	if emu.Limit > 0 && emu.Cpu.Ticks >= emu.Limit {
		err = ErrTickLimit
		return
	}

	if emu.Trace != nil {
		var ins cpu.Instruction
		ins, err = emu.Cpu.Fetch()
		if err != nil {
			return
		}
		err = emu.Trace.Trace(emu, ins)
		if err != nil {
			return
		}
	}

	err = emu.Cpu.Step()
	if err != nil {
		return
	}

	done = !emu.Cpu.Running
	return
}

// Run ticks the emulator until halt, a runtime error, or ctx is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
