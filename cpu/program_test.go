package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProgram(t *testing.T) {
	assert := assert.New(t)

	prog, err := ParseProgram(strings.NewReader("1,9,10,3,2,3,11,0,99,30,40,50\n"))
	assert.NoError(err)
	assert.Equal([]int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, prog.Words)

	prog, err = ParseProgramString(" 104, -1125899906842624 ,99 ")
	assert.NoError(err)
	assert.Equal([]int64{104, -1125899906842624, 99}, prog.Words)
}

func TestParseProgram_Empty(t *testing.T) {
	assert := assert.New(t)

	prog, err := ParseProgramString("\n")
	assert.NoError(err)
	assert.Empty(prog.Words)
}

func TestParseProgram_NotANumber(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		index int
		word  string
	}){
		{"1,2,x,4", 2, "x"},
		{"1,,99", 1, ""},
		{"0x10,99", 0, "0x10"},
		{"1,2,99,", 3, ""},
		{"1,99999999999999999999", 1, "99999999999999999999"},
	}

	for _, entry := range table {
		prog, err := ParseProgramString(entry.text)
		assert.Nil(prog, entry.text)

		var syntax ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.text) {
			assert.Equal(entry.index, syntax.Index, entry.text)
		}

		var nan ErrParseNumber
		if assert.True(errors.As(err, &nan), entry.text) {
			assert.Equal(entry.word, string(nan), entry.text)
		}
	}
}

func TestProgram_String(t *testing.T) {
	assert := assert.New(t)

	text := "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
	prog, err := ParseProgramString(text)
	assert.NoError(err)
	assert.Equal(text, prog.String())
	assert.Equal("", (&Program{}).String())
}

func TestProgram_Patch(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Words: []int64{1, 0, 0, 0, 99}}
	clone := prog.Clone()

	assert.NoError(prog.Patch(0, 2, 0))
	assert.NoError(prog.Patch(7, 5, 0))
	assert.Equal([]int64{2, 0, 0, 0, 99, 0, 0, 5}, prog.Words)
	assert.Equal([]int64{1, 0, 0, 0, 99}, clone.Words)

	assert.ErrorIs(prog.Patch(-1, 0, 0), ErrAddressNegative)
}

func TestProgram_Patch_Limit(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Words: []int64{1, 0, 0, 0, 99}}

	assert.NoError(prog.Patch(9, 1, 10))
	assert.Len(prog.Words, 10)

	assert.ErrorIs(prog.Patch(10, 1, 10), ErrMemoryLimit)
	assert.ErrorIs(prog.Patch(50000000, 7, 100), ErrMemoryLimit)
	assert.ErrorIs(prog.Patch(1<<40, 7, 0), ErrMemoryLimit)
	assert.Len(prog.Words, 10)

	// Words already in the image stay patchable.
	assert.NoError(prog.Patch(4, 3, 2))
	assert.Equal(int64(3), prog.Words[4])
}

func TestProgram_NewCpu(t *testing.T) {
	assert := assert.New(t)

	prog, err := ParseProgramString("3,0,4,0,99")
	assert.NoError(err)

	cpu := prog.NewCpu(17)
	assert.NoError(cpu.RunToHalt())
	assert.Equal([]int64{17}, cpu.Output)
	assert.Equal([]int64{3, 0, 4, 0, 99}, prog.Words)
}
