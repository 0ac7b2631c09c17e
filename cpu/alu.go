package cpu

import (
	"errors"
)

// Alu performs op on registers reg_a and reg_b.
// ADD, MUL and MOD write their result to reg_a. CMP only sets FL.
func (cpu *Cpu) Alu(op CodeAluOp, reg_a, reg_b uint8) (err error) {
	a, err := cpu.ReadRegister(reg_a)
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}
	b, err := cpu.ReadRegister(reg_b)
	if err != nil {
		err = errors.Join(ErrOpcodeArg2, err)
		return
	}

	// uint8 arithmetic wraps modulo 256.
	switch op {
	case ALU_OP_ADD:
		cpu.Register[reg_a] = a + b
	case ALU_OP_MUL:
		cpu.Register[reg_a] = a * b
	case ALU_OP_MOD:
		if b == 0 {
			err = ErrDivideByZero
			return
		}
		cpu.Register[reg_a] = a % b
	case ALU_OP_CMP:
		cpu.Fl = compare(a, b)
	default:
		err = ErrOpcodeAlu
	}

	return
}

// compare returns the relation of a to b. Equality is checked first.
func compare(a, b uint8) Flag {
	switch {
	case a == b:
		return FL_EQUAL
	case a < b:
		return FL_LESS
	default:
		return FL_GREATER
	}
}
