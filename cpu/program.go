package cpu

import (
	"iter"
)

// Line is a single byte of a program image, with its source location.
type Line struct {
	LineNo  int    // Source line number.
	Text    string // Source text with the comment removed.
	Address int    // Memory address of the byte.
	Value   uint8  // Byte value.
}

// Program is a loaded program image.
type Program struct {
	Lines []Line
}

// Debug returns the source line that loaded addr, or nil.
func (prog *Program) Debug(addr int) (line *Line) {
	for n := range prog.Lines {
		if prog.Lines[n].Address == addr {
			line = &prog.Lines[n]
			break
		}
	}

	return
}

// Len returns the size of the image in bytes.
func (prog *Program) Len() int {
	return len(prog.Lines)
}

// Binary returns the memory image.
func (prog *Program) Binary() (bins []uint8) {
	for _, value := range prog.Bytes() {
		bins = append(bins, value)
	}

	return
}

// Bytes returns the (address, value) pairs of the image, in load order.
func (prog *Program) Bytes() iter.Seq2[int, uint8] {
	return func(yield func(addr int, value uint8) bool) {
		for _, line := range prog.Lines {
			if !yield(line.Address, line.Value) {
				return
			}
		}
	}
}
