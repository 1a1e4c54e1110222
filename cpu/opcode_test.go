package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word int64
		inst Instruction
	}){
		{1002, MakeInstruction(OP_MUL, MODE_POSITION, MODE_IMMEDIATE, MODE_POSITION)},
		{2, MakeInstruction(OP_MUL)},
		{104, MakeInstruction(OP_OUT, MODE_IMMEDIATE)},
		{21101, MakeInstruction(OP_ADD, MODE_IMMEDIATE, MODE_IMMEDIATE, MODE_RELATIVE)},
		{203, MakeInstruction(OP_IN, MODE_RELATIVE)},
		{1205, MakeInstruction(OP_JT, MODE_RELATIVE, MODE_IMMEDIATE)},
		{99, MakeInstruction(OP_HALT)},
	}

	for _, entry := range table {
		inst, err := Decode(entry.word)
		assert.NoError(err, "%d", entry.word)
		assert.Equal(entry.inst, inst, "%d", entry.word)
		assert.Equal(entry.word, inst.Word(), "%d", entry.word)
	}
}

func TestDecode_Errors(t *testing.T) {
	assert := assert.New(t)

	for _, word := range []int64{0, 10, 98, 100, -1, -1002} {
		_, err := Decode(word)
		assert.ErrorIs(err, ErrOpcodeDecode, "%d", word)
		assert.ErrorIs(err, ErrOpcodeUnknown, "%d", word)
	}

	for _, word := range []int64{301, 3002, 40001, 9099} {
		_, err := Decode(word)
		assert.ErrorIs(err, ErrOpcodeDecode, "%d", word)
		assert.ErrorIs(err, ErrModeUnknown, "%d", word)
	}
}

func TestOpcode_Arity(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(3, OP_ADD.Arity())
	assert.Equal(3, OP_MUL.Arity())
	assert.Equal(1, OP_IN.Arity())
	assert.Equal(1, OP_OUT.Arity())
	assert.Equal(2, OP_JT.Arity())
	assert.Equal(2, OP_JF.Arity())
	assert.Equal(3, OP_LT.Arity())
	assert.Equal(3, OP_EQ.Arity())
	assert.Equal(1, OP_RB.Arity())
	assert.Equal(0, OP_HALT.Arity())
	assert.False(Opcode(42).Valid())
}

func TestMode(t *testing.T) {
	assert := assert.New(t)

	assert.True(MODE_POSITION.Writable())
	assert.False(MODE_IMMEDIATE.Writable())
	assert.True(MODE_RELATIVE.Writable())
	assert.False(Mode(3).Valid())
	assert.Equal("relative", MODE_RELATIVE.String())
	assert.Equal("Mode(7)", Mode(7).String())
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("halt", MakeInstruction(OP_HALT).String())
	assert.Equal("out immediate", MakeInstruction(OP_OUT, MODE_IMMEDIATE).String())
	assert.Equal("jf relative position", MakeInstruction(OP_JF, MODE_RELATIVE).String())
	assert.Equal("Opcode(42)", Opcode(42).String())
}
