// Package trace writes a human readable line per executed LS-8
// instruction, optionally filtered by a watch expression.
package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/brilles/Computer-Architecture/cpu"
	"github.com/brilles/Computer-Architecture/emulator"
)

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Tracer writes the CPU state before each instruction.
//
//	TRACE: PC | IR A B | R0 R1 R2 R3 R4 R5 R6 R7 | FL instruction
type Tracer struct {
	Output    io.Writer // Destination of trace lines.
	Watch     *Watch    // If set, only lines where the watch is true are written.
	Highlight bool      // Mark registers changed since the previous line.

	last    [cpu.REGISTER_COUNT]uint8
	started bool
}

var _ emulator.Tracer = (*Tracer)(nil)

// Trace writes the trace line for ins, unless the watch rejects it.
func (tr *Tracer) Trace(emu *emulator.Emulator, ins cpu.Instruction) (err error) {
	if tr.Watch != nil {
		var ok bool
		ok, err = tr.Watch.Match(emu, ins)
		if err != nil || !ok {
			return
		}
	}

	_, err = io.WriteString(tr.Output, tr.Format(emu.Cpu, ins))
	return
}

// Format returns the trace line for ins about to execute on c.
func (tr *Tracer) Format(c *cpu.Cpu, ins cpu.Instruction) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "TRACE: %02X | %02X %02X %02X |", c.Pc, uint8(ins.Code), ins.A, ins.B)

	for n, val := range c.Register {
		if tr.Highlight && tr.started && tr.last[n] != val {
			fmt.Fprintf(&sb, " %s%02X%s", ansiBold, val, ansiReset)
		} else {
			fmt.Fprintf(&sb, " %02X", val)
		}
	}

	fmt.Fprintf(&sb, " | %v %v\n", c.Fl, ins)

	tr.last = c.Register
	tr.started = true

	return sb.String()
}
