package cpu

import (
	"io"
	"slices"
	"strconv"
	"strings"
)

// Program is an intcode memory image.
type Program struct {
	Words []int64
}

// ParseProgram reads a comma separated listing of base 10 integers.
func ParseProgram(input io.Reader) (prog *Program, err error) {
	text, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return ParseProgramString(string(text))
}

// ParseProgramString parses a comma separated listing of base 10 integers.
// Whitespace around each word, including a trailing newline, is ignored.
func ParseProgramString(text string) (prog *Program, err error) {
	prog = &Program{}

	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	for n, word := range strings.Split(text, ",") {
		word = strings.TrimSpace(word)
		var value int64
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			prog = nil
			err = ErrSyntax{Index: n, Err: ErrParseNumber(word)}
			return
		}
		prog.Words = append(prog.Words, value)
	}

	return
}

// String returns the program as a comma separated listing.
func (prog *Program) String() string {
	words := make([]string, len(prog.Words))
	for n, value := range prog.Words {
		words[n] = strconv.FormatInt(value, 10)
	}

	return strings.Join(words, ",")
}

// Clone returns a copy of the program.
func (prog *Program) Clone() *Program {
	return &Program{Words: slices.Clone(prog.Words)}
}

// Patch sets the word at addr, zero filling the image up to addr.
// Growing the image to limit words or more fails with ErrMemoryLimit;
// a limit of 0 is MEMORY_LIMIT_DEFAULT.
func (prog *Program) Patch(addr int64, value int64, limit int) (err error) {
	mem := Memory{Limit: limit, Data: prog.Words}
	err = mem.Write(addr, value)
	prog.Words = mem.Data

	return
}

// NewCpu creates a processor loaded with a copy of the program.
func (prog *Program) NewCpu(input ...int64) *Cpu {
	return NewCpu(prog.Words, input...)
}
