package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.True(cpu.Empty())
	assert.False(cpu.Full())

	assert.NoError(cpu.Push(0x12))
	assert.False(cpu.Empty())
	assert.Equal(1, cpu.Depth())
	assert.Equal(uint8(STACK_TOP-1), cpu.Register[SP])
	assert.Equal(uint8(0x12), cpu.Memory[STACK_TOP-1])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Push(0x12))
	assert.NoError(cpu.Push(0xab))

	val, err := cpu.Pop()
	assert.NoError(err)
	assert.Equal(uint8(0xab), val)
	assert.Equal(1, cpu.Depth())

	val, err = cpu.Pop()
	assert.NoError(err)
	assert.Equal(uint8(0x12), val)
	assert.Equal(0, cpu.Depth())
	assert.Equal(uint8(STACK_TOP), cpu.Register[SP])
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	val, err := cpu.Pop()
	assert.ErrorIs(err, ErrStackEmpty)
	assert.Equal(uint8(0), val)
	assert.Equal(uint8(STACK_TOP), cpu.Register[SP])
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	_, err := cpu.Peek()
	assert.ErrorIs(err, ErrStackEmpty)

	assert.NoError(cpu.Push(0x12))
	assert.NoError(cpu.Push(0xab))

	val, err := cpu.Peek()
	assert.NoError(err)
	assert.Equal(uint8(0xab), val)
	assert.Equal(2, cpu.Depth())
}

func TestStack_Full(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	for n := range STACK_TOP {
		assert.False(cpu.Full())
		assert.NoError(cpu.Push(uint8(n)))
	}

	assert.True(cpu.Full())
	assert.Equal(STACK_TOP, cpu.Depth())
	assert.Equal(uint8(0), cpu.Register[SP])

	err := cpu.Push(0xff)
	assert.ErrorIs(err, ErrStackFull)
	assert.Equal(uint8(0), cpu.Register[SP])
	assert.Equal(uint8(STACK_TOP-1), cpu.Memory[0])
}

func TestStack_PointerInvalid(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register[SP] = STACK_TOP + 1
	cpu.Memory[STACK_TOP] = 0x55

	assert.ErrorIs(cpu.Push(1), ErrStackPointer)
	_, err := cpu.Pop()
	assert.ErrorIs(err, ErrStackPointer)
	assert.Equal(0, cpu.Depth())
	assert.Equal(uint8(STACK_TOP+1), cpu.Register[SP])
	assert.Equal(uint8(0x55), cpu.Memory[STACK_TOP])
}

func TestStack_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Push(1))

	for n := range uint8(REGISTER_COUNT) {
		if n == SP {
			continue
		}
		cpu.Register[n] = 0xc0 | n
		sp := cpu.Register[SP]

		assert.NoError(cpu.PushRegister(n))
		cpu.Register[n] = 0
		assert.NoError(cpu.PopRegister(n))

		assert.Equal(0xc0|n, cpu.Register[n])
		assert.Equal(sp, cpu.Register[SP])
	}
}

func TestStack_RegisterSp(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	// SP is read after the decrement.
	assert.NoError(cpu.PushRegister(SP))
	assert.Equal(uint8(STACK_TOP-1), cpu.Memory[STACK_TOP-1])

	// SP is incremented after the load.
	cpu.Memory[STACK_TOP-1] = 0x20
	assert.NoError(cpu.PopRegister(SP))
	assert.Equal(uint8(0x21), cpu.Register[SP])
}

func TestStack_RegisterInvalid(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.ErrorIs(cpu.PushRegister(8), ErrRegisterInvalid)
	assert.ErrorIs(cpu.PopRegister(8), ErrRegisterInvalid)
	assert.True(cpu.Empty())
}
