package cpu

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrInputUnderflow  = errors.New(f("input queue empty"))
	ErrWriteImmediate  = errors.New(f("write parameter in immediate mode"))
	ErrOverflow        = errors.New(f("arithmetic overflow"))
	ErrAddressNegative = errors.New(f("negative address"))
	ErrMemoryLimit     = errors.New(f("memory limit exceeded"))
	ErrStepLimit       = errors.New(f("step limit exceeded"))

	// Instruction decode errors
	ErrOpcodeDecode  = errors.New(f("decode"))
	ErrOpcodeUnknown = errors.New(f("unknown opcode"))
	ErrModeUnknown   = errors.New(f("unknown parameter mode"))
)

// ErrRuntime identifies the instruction that failed.
type ErrRuntime struct {
	Ip   int64 // Address of the failing instruction.
	Word int64 // Instruction word at Ip.
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("ip %d opcode %v (%d) %v", err.Ip, Opcode(err.Word%100), err.Word, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrParseNumber is a program listing token that is not a number.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrSyntax locates a parse error in a program listing.
type ErrSyntax struct {
	Index int // Zero based index of the word in the listing.
	Err   error
}

func (err ErrSyntax) Error() string {
	return f("word %d %v", err.Index, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
