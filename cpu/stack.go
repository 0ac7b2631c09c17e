package cpu

const (
	STACK_TOP = 0xf4 // Stack pointer of an empty stack.
)

// The stack lives in memory below STACK_TOP and grows down. Register SP
// addresses the most recently pushed byte.

// Push decrements SP, then stores value at the new top of stack.
func (cpu *Cpu) Push(value uint8) error {
	return cpu.push(func() uint8 { return value })
}

// PushRegister decrements SP, then stores register index at the new top of
// stack. The register is read after the decrement, so pushing SP stores
// the new stack pointer.
func (cpu *Cpu) PushRegister(index uint8) (err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegister(index)
		return
	}

	return cpu.push(func() uint8 { return cpu.Register[index] })
}

func (cpu *Cpu) push(load func() uint8) (err error) {
	sp := cpu.Register[SP]
	switch {
	case sp > STACK_TOP:
		return ErrStackPointer
	case sp == 0:
		return ErrStackFull
	}

	cpu.Register[SP] = sp - 1
	cpu.Memory[sp-1] = load()

	return
}

// Pop reads the top of stack, then increments SP.
func (cpu *Cpu) Pop() (value uint8, err error) {
	value, err = cpu.Peek()
	if err != nil {
		return
	}

	cpu.Register[SP]++
	return
}

// PopRegister reads the top of stack into register index, then increments
// SP. Popping into SP leaves the popped value plus one in SP.
func (cpu *Cpu) PopRegister(index uint8) (err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegister(index)
		return
	}

	value, err := cpu.Peek()
	if err != nil {
		return
	}

	cpu.Register[index] = value
	cpu.Register[SP]++
	return
}

// Peek returns the top of stack.
func (cpu *Cpu) Peek() (value uint8, err error) {
	sp := cpu.Register[SP]
	switch {
	case sp > STACK_TOP:
		err = ErrStackPointer
		return
	case sp == STACK_TOP:
		err = ErrStackEmpty
		return
	}

	value = cpu.Memory[sp]
	return
}

// Empty returns true when nothing is on the stack.
func (cpu *Cpu) Empty() bool {
	return cpu.Register[SP] == STACK_TOP
}

// Full returns true when no further push is possible.
func (cpu *Cpu) Full() bool {
	return cpu.Register[SP] == 0
}

// Depth returns the number of bytes on the stack.
func (cpu *Cpu) Depth() int {
	sp := cpu.Register[SP]
	if sp > STACK_TOP {
		return 0
	}
	return STACK_TOP - int(sp)
}
