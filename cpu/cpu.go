package cpu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"
)

const (
	MEMORY_SIZE    = 256 // Bytes of addressable memory.
	REGISTER_COUNT = 8   // Number of general purpose registers.
	SP             = 7   // Register holding the stack pointer.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"SP":          fmt.Sprintf("%d", SP),
	"STACK_TOP":   fmt.Sprintf("0x%x", STACK_TOP),
	"FL_NONE":     fmt.Sprintf("%d", FL_NONE),
	"FL_EQUAL":    fmt.Sprintf("%d", FL_EQUAL),
	"FL_LESS":     fmt.Sprintf("%d", FL_LESS),
	"FL_GREATER":  fmt.Sprintf("%d", FL_GREATER),
}

func init() {
	for code, handler := range codeTable {
		_cpu_defines[handler.Mnemonic] = fmt.Sprintf("0x%02x", uint8(code))
	}
	for n := range REGISTER_COUNT {
		_cpu_defines[fmt.Sprintf("R%d", n)] = fmt.Sprintf("%d", n)
	}
}

// Cpu is the simulation context for the LS-8.
type Cpu struct {
	Verbose bool      // Set to enable verbose logging.
	Output  io.Writer // PRN destination, os.Stdout if nil.

	Memory   [MEMORY_SIZE]uint8    // Main memory.
	Register [REGISTER_COUNT]uint8 // Register bank. Register[SP] is the stack pointer.
	Pc       int                   // Address of the next instruction.
	Fl       Flag                  // Result of the last compare.
	Running  bool                  // Cleared by HLT or a fatal error.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
//   - Clears memory, registers and FL.
//   - Zeros the tick counter.
//   - Points the stack pointer at an empty stack.
//   - Sets the PC to address 0.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	clear(cpu.Register[:])
	cpu.Register[SP] = STACK_TOP
	cpu.Pc = 0
	cpu.Fl = FL_NONE
	cpu.Ticks = 0
	cpu.Running = true
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"stack",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "fl":
			strval = cpu.Fl.String()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			strval = fmt.Sprintf("%02X", cpu.Register[reg[1]-'0'])
		case "stack":
			val, err := cpu.Peek()
			if err == nil {
				strval = fmt.Sprintf("%02X", val)
			} else {
				strval = "--"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// ReadMemory reads the byte at addr.
func (cpu *Cpu) ReadMemory(addr int) (value uint8, err error) {
	if addr < 0 || addr >= len(cpu.Memory) {
		err = ErrAddress(addr)
		return
	}

	value = cpu.Memory[addr]
	return
}

// WriteMemory writes value to the byte at addr.
func (cpu *Cpu) WriteMemory(addr int, value uint8) (err error) {
	if addr < 0 || addr >= len(cpu.Memory) {
		err = ErrAddress(addr)
		return
	}

	cpu.Memory[addr] = value
	return
}

// ReadRegister reads register index.
func (cpu *Cpu) ReadRegister(index uint8) (value uint8, err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegister(index)
		return
	}

	value = cpu.Register[index]
	return
}

// WriteRegister writes value to register index.
func (cpu *Cpu) WriteRegister(index uint8, value uint8) (err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegister(index)
		return
	}

	cpu.Register[index] = value
	return
}

// Load writes a sequence of (address, value) pairs into memory.
func (cpu *Cpu) Load(data iter.Seq2[int, uint8]) (err error) {
	for addr, value := range data {
		err = cpu.WriteMemory(addr, value)
		if err != nil {
			return
		}
	}

	return
}

// Fetch reads the instruction at the PC.
// Only the operand bytes declared by the opcode are read. Operands of an
// unknown opcode are never read, its decode error is left to Execute.
func (cpu *Cpu) Fetch() (ins Instruction, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcodeFetch, err)
		}
	}()

	var code uint8
	code, err = cpu.ReadMemory(cpu.Pc)
	if err != nil {
		return
	}
	ins.Code = Code(code)

	_, ok := codeTable[ins.Code]
	if !ok {
		return
	}

	count := ins.Code.OperandCount()
	if count > 0 {
		ins.A, err = cpu.ReadMemory(cpu.Pc + 1)
		if err != nil {
			return
		}
	}
	if count > 1 {
		ins.B, err = cpu.ReadMemory(cpu.Pc + 2)
		if err != nil {
			return
		}
	}

	return
}

// Step fetches and executes a single instruction.
// Any error stops the CPU.
func (cpu *Cpu) Step() (err error) {
	if !cpu.Running {
		return ErrHalted
	}

	defer func() {
		if err != nil {
			cpu.Running = false
		}
	}()

	ins, err := cpu.Fetch()
	if err != nil {
		return
	}

	err = cpu.Execute(ins)
	return
}

// Run executes instructions until HLT, a fatal error, or ctx is done.
// The context is checked once per instruction.
func (cpu *Cpu) Run(ctx context.Context) (err error) {
	for cpu.Running {
		err = ctx.Err()
		if err != nil {
			return
		}

		err = cpu.Step()
		if err != nil {
			return
		}
	}

	return
}

func (cpu *Cpu) output() io.Writer {
	if cpu.Output == nil {
		return os.Stdout
	}
	return cpu.Output
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(ins.Code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("cpu: %02x: %v", cpu.Pc, ins)
	}

	handler, ok := codeTable[ins.Code]
	if !ok {
		err = ErrOpcodeDecode
		return
	}

	next_pc := cpu.Pc + ins.Code.Len()

	switch handler.Op {
	case OP_HALT:
		cpu.Running = false
	case OP_LOAD_IMMEDIATE:
		err = cpu.WriteRegister(ins.A, ins.B)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
	case OP_PRINT:
		var value uint8
		value, err = cpu.ReadRegister(ins.A)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		_, err = fmt.Fprintf(cpu.output(), "%d\n", value)
		if err != nil {
			err = errors.Join(ErrOutput, err)
			return
		}
	case OP_ALU:
		err = cpu.Alu(handler.Alu, ins.A, ins.B)
		if err != nil {
			err = errors.Join(ErrOpcodeAlu, err)
			return
		}
	case OP_PUSH:
		err = cpu.PushRegister(ins.A)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
	case OP_POP:
		err = cpu.PopRegister(ins.A)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
	case OP_CALL:
		_, err = cpu.ReadRegister(ins.A)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		// The return address must fit in a stack byte.
		if next_pc >= len(cpu.Memory) {
			err = ErrAddress(next_pc)
			return
		}
		err = cpu.Push(uint8(next_pc))
		if err != nil {
			return
		}
		// The target is read after the push, so CALL SP jumps to the
		// new stack pointer.
		next_pc = int(cpu.Register[ins.A])
	case OP_RETURN:
		var target uint8
		target, err = cpu.Pop()
		if err != nil {
			return
		}
		next_pc = int(target)
	case OP_JUMP, OP_JUMP_EQUAL, OP_JUMP_NOT_EQUAL:
		var target uint8
		target, err = cpu.ReadRegister(ins.A)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		taken := true
		switch handler.Op {
		case OP_JUMP_EQUAL:
			taken = cpu.Fl == FL_EQUAL
		case OP_JUMP_NOT_EQUAL:
			taken = cpu.Fl != FL_EQUAL
		}
		if taken {
			next_pc = int(target)
		}
	default:
		err = ErrOpcodeDecode
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks += 1

	return
}
