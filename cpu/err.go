package cpu

import (
	"errors"

	"github.com/brilles/Computer-Architecture/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted          = errors.New(f("halted"))
	ErrAddressInvalid  = errors.New(f("address invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrStackEmpty      = errors.New(f("stack empty"))
	ErrStackFull       = errors.New(f("stack full"))
	ErrStackPointer    = errors.New(f("stack pointer outside stack"))
	ErrDivideByZero    = errors.New(f("divide by zero"))
	ErrOutput          = errors.New(f("output"))

	// Instruction decode errors
	ErrOpcodeDecode = errors.New(f("decode"))
	ErrOpcodeFetch  = errors.New(f("fetch"))
	ErrOpcodeAlu    = errors.New(f("alu"))
	ErrOpcodeArg1   = errors.New(f("arg1"))
	ErrOpcodeArg2   = errors.New(f("arg2"))

	// Loader errors
	ErrProgramSize = errors.New(f("program larger than memory"))
)

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x %v", uint8(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrAddress is a memory access outside of memory.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%02x out of range", int(ea))
}

func (ea ErrAddress) Is(err error) bool {
	return err == ErrAddressInvalid
}

// ErrRegister is an access to a register that does not exist.
type ErrRegister uint8

func (er ErrRegister) Error() string {
	return f("register r%d invalid", uint8(er))
}

func (er ErrRegister) Is(err error) bool {
	return err == ErrRegisterInvalid
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a binary byte", string(err))
}
