// Package cpu implements the LS-8 microprocessor and its program loader.
//
// The CPU consists of a program counter (PC), 256 bytes of memory, eight
// 8-bit general-purpose registers (r0-r7), an ALU, a flags register (FL)
// holding the result of the last compare, and a stack kept in memory and
// addressed through r7.
//
// Each opcode encodes its own operand count and whether it assigns the PC
// itself, so the instruction length is known before dispatch.
//
// The loader reads a program image written as one binary literal per line,
// with '#' comments.
package cpu
