package cpu

import (
	"fmt"
)

// Code is an LS-8 opcode.
//
// Opcode bits are laid out as AABCDDDD:
//   - AA: number of operand bytes following the opcode.
//   - B: set for ALU operations.
//   - C: set when the instruction assigns the PC itself.
//   - DDDD: instruction identifier.
type Code uint8

// Instruction set.
const (
	HLT  = Code(0b00000001) // Halt the CPU.
	LDI  = Code(0b10000010) // Load immediate into register.
	PRN  = Code(0b01000111) // Print register as decimal.
	MUL  = Code(0b10100010) // Multiply registers.
	ADD  = Code(0b10100000) // Add registers.
	MOD  = Code(0b10100100) // Remainder of registers.
	PUSH = Code(0b01000101) // Push register.
	POP  = Code(0b01000110) // Pop register.
	CALL = Code(0b01010000) // Call subroutine at register.
	RET  = Code(0b00010001) // Return from subroutine.
	CMP  = Code(0b10100111) // Compare registers into FL.
	JMP  = Code(0b01010100) // Jump to register.
	JEQ  = Code(0b01010101) // Jump to register if equal.
	JNE  = Code(0b01010110) // Jump to register if not equal.
)

const (
	CODE_OPERANDS = Code(0b11 << 6) // Mask of the operand count.
	CODE_ALU      = Code(1 << 5)    // ALU operation bit.
	CODE_SETS_PC  = Code(1 << 4)    // Instruction assigns the PC.
)

// CodeOp is the operation an opcode dispatches to.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_HALT           = CodeOp(0)  // hlt
	OP_LOAD_IMMEDIATE = CodeOp(1)  // ldi
	OP_PRINT          = CodeOp(2)  // prn
	OP_ALU            = CodeOp(3)  // alu
	OP_PUSH           = CodeOp(4)  // push
	OP_POP            = CodeOp(5)  // pop
	OP_CALL           = CodeOp(6)  // call
	OP_RETURN         = CodeOp(7)  // ret
	OP_JUMP           = CodeOp(8)  // jmp
	OP_JUMP_EQUAL     = CodeOp(9)  // jeq
	OP_JUMP_NOT_EQUAL = CodeOp(10) // jne
)

// Control reports whether the operation transfers control.
func (op CodeOp) Control() bool {
	switch op {
	case OP_CALL, OP_RETURN, OP_JUMP, OP_JUMP_EQUAL, OP_JUMP_NOT_EQUAL:
		return true
	}
	return false
}

// CodeAluOp is an ALU operation type.
type CodeAluOp int

//go:generate go tool stringer -linecomment -type=CodeAluOp
const (
	ALU_OP_ADD = CodeAluOp(0) // add
	ALU_OP_MUL = CodeAluOp(1) // mul
	ALU_OP_MOD = CodeAluOp(2) // mod
	ALU_OP_CMP = CodeAluOp(3) // cmp
)

// Flag is the relation recorded in FL by the last compare.
type Flag int

//go:generate go tool stringer -linecomment -type=Flag
const (
	FL_NONE    = Flag(0) // -
	FL_EQUAL   = Flag(1) // eq
	FL_LESS    = Flag(2) // lt
	FL_GREATER = Flag(3) // gt
)

// Bits returns the LS-8 FL register byte, 0b00000LGE.
func (fl Flag) Bits() uint8 {
	switch fl {
	case FL_EQUAL:
		return 0b001
	case FL_GREATER:
		return 0b010
	case FL_LESS:
		return 0b100
	}
	return 0
}

// Handler is a dispatch table entry.
type Handler struct {
	Mnemonic string
	Op       CodeOp
	Alu      CodeAluOp // Only for OP_ALU.
}

// codeTable maps every valid opcode to its handler.
var codeTable = map[Code]Handler{
	HLT:  {Mnemonic: "HLT", Op: OP_HALT},
	LDI:  {Mnemonic: "LDI", Op: OP_LOAD_IMMEDIATE},
	PRN:  {Mnemonic: "PRN", Op: OP_PRINT},
	MUL:  {Mnemonic: "MUL", Op: OP_ALU, Alu: ALU_OP_MUL},
	ADD:  {Mnemonic: "ADD", Op: OP_ALU, Alu: ALU_OP_ADD},
	MOD:  {Mnemonic: "MOD", Op: OP_ALU, Alu: ALU_OP_MOD},
	PUSH: {Mnemonic: "PUSH", Op: OP_PUSH},
	POP:  {Mnemonic: "POP", Op: OP_POP},
	CALL: {Mnemonic: "CALL", Op: OP_CALL},
	RET:  {Mnemonic: "RET", Op: OP_RETURN},
	CMP:  {Mnemonic: "CMP", Op: OP_ALU, Alu: ALU_OP_CMP},
	JMP:  {Mnemonic: "JMP", Op: OP_JUMP},
	JEQ:  {Mnemonic: "JEQ", Op: OP_JUMP_EQUAL},
	JNE:  {Mnemonic: "JNE", Op: OP_JUMP_NOT_EQUAL},
}

func init() {
	for code, handler := range codeTable {
		if code.SetsPc() != handler.Op.Control() {
			panic(fmt.Sprintf("%v: sets-pc bit does not match handler %v", handler.Mnemonic, handler.Op))
		}
		if code.IsAlu() != (handler.Op == OP_ALU) {
			panic(fmt.Sprintf("%v: alu bit does not match handler %v", handler.Mnemonic, handler.Op))
		}
	}
}

// Lookup returns the dispatch table entry for an opcode.
func Lookup(code Code) (handler Handler, ok bool) {
	handler, ok = codeTable[code]
	return
}

// Decode returns the operand count of an opcode, and whether the
// instruction assigns the PC itself.
func Decode(code Code) (count int, setsPc bool) {
	return code.OperandCount(), code.SetsPc()
}

// OperandCount returns the number of operand bytes following the opcode.
func (code Code) OperandCount() int {
	return int((code & CODE_OPERANDS) >> 6)
}

// IsAlu returns true for ALU opcodes.
func (code Code) IsAlu() bool {
	return (code & CODE_ALU) != 0
}

// SetsPc returns true if the instruction assigns the PC itself.
func (code Code) SetsPc() bool {
	return (code & CODE_SETS_PC) != 0
}

// Len returns the instruction length in bytes.
func (code Code) Len() int {
	return 1 + code.OperandCount()
}

// String returns the mnemonic of the opcode.
func (code Code) String() string {
	handler, ok := codeTable[code]
	if !ok {
		return fmt.Sprintf("0x%02x", uint8(code))
	}
	return handler.Mnemonic
}

// Instruction is an opcode with its operand bytes.
// Operands beyond the opcode's operand count are zero.
type Instruction struct {
	Code Code
	A    uint8
	B    uint8
}

// String returns the instruction in assembly form.
func (ins Instruction) String() (out string) {
	out = ins.Code.String()

	switch ins.Code.OperandCount() {
	case 0:
	case 1:
		out += fmt.Sprintf(" 0x%02x", ins.A)
	default:
		out += fmt.Sprintf(" 0x%02x 0x%02x", ins.A, ins.B)
	}

	return
}
