package cpu

import (
	"errors"
	"fmt"
	"strings"
)

// Opcode is an intcode operation.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD  = Opcode(1)  // add
	OP_MUL  = Opcode(2)  // mul
	OP_IN   = Opcode(3)  // in
	OP_OUT  = Opcode(4)  // out
	OP_JT   = Opcode(5)  // jt
	OP_JF   = Opcode(6)  // jf
	OP_LT   = Opcode(7)  // lt
	OP_EQ   = Opcode(8)  // eq
	OP_RB   = Opcode(9)  // rb
	OP_HALT = Opcode(99) // halt
)

var _opcode_arity = map[Opcode]int{
	OP_ADD:  3,
	OP_MUL:  3,
	OP_IN:   1,
	OP_OUT:  1,
	OP_JT:   2,
	OP_JF:   2,
	OP_LT:   3,
	OP_EQ:   3,
	OP_RB:   1,
	OP_HALT: 0,
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() (ok bool) {
	_, ok = _opcode_arity[op]
	return
}

// Arity returns the number of operand words that follow the opcode.
func (op Opcode) Arity() int {
	return _opcode_arity[op]
}

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITION  = Mode(0) // position
	MODE_IMMEDIATE = Mode(1) // immediate
	MODE_RELATIVE  = Mode(2) // relative
)

// Valid returns true if the mode is a known addressing mode.
func (mode Mode) Valid() bool {
	return mode >= MODE_POSITION && mode <= MODE_RELATIVE
}

// Writable returns true if the mode can address a write target.
func (mode Mode) Writable() bool {
	return mode == MODE_POSITION || mode == MODE_RELATIVE
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [3]Mode // Mode of operand 1, 2 and 3.
}

// MakeInstruction creates an instruction, with unspecified modes
// defaulting to MODE_POSITION.
func MakeInstruction(op Opcode, modes ...Mode) (inst Instruction) {
	inst.Op = op
	copy(inst.Modes[:], modes)
	return
}

// Decode decodes an instruction word, without reading any operands.
func Decode(word int64) (inst Instruction, err error) {
	if word < 0 {
		err = errors.Join(ErrOpcodeDecode, ErrOpcodeUnknown)
		return
	}

	inst.Op = Opcode(word % 100)
	if !inst.Op.Valid() {
		err = errors.Join(ErrOpcodeDecode, ErrOpcodeUnknown)
		return
	}

	digits := word / 100
	for n := range inst.Modes {
		mode := Mode(digits % 10)
		if !mode.Valid() {
			err = errors.Join(ErrOpcodeDecode, ErrModeUnknown)
			return
		}
		inst.Modes[n] = mode
		digits /= 10
	}

	return
}

// Arity returns the number of operand words of the instruction.
func (inst Instruction) Arity() int {
	return inst.Op.Arity()
}

// Word encodes the instruction back into an instruction word.
func (inst Instruction) Word() (word int64) {
	word = int64(inst.Op)
	scale := int64(100)
	for _, mode := range inst.Modes {
		word += int64(mode) * scale
		scale *= 10
	}
	return
}

// String returns the opcode and the modes of the operands it uses.
func (inst Instruction) String() string {
	var sb strings.Builder

	sb.WriteString(inst.Op.String())
	for n := range inst.Arity() {
		fmt.Fprintf(&sb, " %v", inst.Modes[n])
	}

	return sb.String()
}
