package cpu

import (
	"slices"
)

const (
	MEMORY_LIMIT_DEFAULT = 16 << 20 // Default memory ceiling, in words.
)

// Memory is the addressable memory of the processor.
// It grows on access, zero filling new words, and never shrinks.
type Memory struct {
	Limit int // Maximum size in words, 0 for MEMORY_LIMIT_DEFAULT.
	Data  []int64
}

// Load replaces the memory contents with a copy of image.
func (m *Memory) Load(image []int64) {
	m.Data = slices.Clone(image)
}

// Len returns the current size of memory in words.
func (m *Memory) Len() int {
	return len(m.Data)
}

func (m *Memory) limit() int {
	if m.Limit <= 0 {
		return MEMORY_LIMIT_DEFAULT
	}
	return m.Limit
}

// Ensure grows memory so that addr is valid.
// Growth beyond the limit fails with ErrMemoryLimit; a program image loaded
// larger than the limit stays addressable.
func (m *Memory) Ensure(addr int64) (err error) {
	if addr < 0 {
		err = ErrAddressNegative
		return
	}

	if addr < int64(len(m.Data)) {
		return
	}

	if addr >= int64(m.limit()) {
		err = ErrMemoryLimit
		return
	}

	used := len(m.Data)
	size := int(addr) + 1
	m.Data = slices.Grow(m.Data, size-used)[:size]
	clear(m.Data[used:])

	return
}

// Read returns the word at addr, growing memory if needed.
func (m *Memory) Read(addr int64) (value int64, err error) {
	err = m.Ensure(addr)
	if err != nil {
		return
	}

	value = m.Data[addr]
	return
}

// Write stores value at addr, growing memory if needed.
func (m *Memory) Write(addr int64, value int64) (err error) {
	err = m.Ensure(addr)
	if err != nil {
		return
	}

	m.Data[addr] = value
	return
}

// Peek returns the word at addr without growing memory.
func (m *Memory) Peek(addr int64) (value int64, ok bool) {
	if addr < 0 || addr >= int64(len(m.Data)) {
		return
	}

	return m.Data[addr], true
}
