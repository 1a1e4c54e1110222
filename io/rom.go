package io

import (
	"io"
)

// Rom supplies a fixed sequence of values.
type Rom struct {
	Data      []int64
	ReadIndex int
}

var _ Channel = (*Rom)(nil)

// Rewind restarts the sequence.
func (rc *Rom) Rewind() {
	rc.ReadIndex = 0
}

func (rc *Rom) Receive() (value int64, err error) {
	if rc.ReadIndex >= len(rc.Data) {
		err = io.EOF
		return
	}

	value = rc.Data[rc.ReadIndex]
	rc.ReadIndex++
	return
}

func (rc *Rom) Send(value int64) error {
	return ErrChannelFull
}
