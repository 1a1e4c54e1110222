package io

import (
	"io"
	"slices"
)

// Pipe is an unbounded FIFO of values. An open, empty pipe reports
// ErrChannelEmpty, so a reader can suspend until the writer catches up.
type Pipe struct {
	Data   []int64
	Closed bool
}

var _ Channel = (*Pipe)(nil)

// Rewind empties and reopens the pipe.
func (pc *Pipe) Rewind() {
	pc.Data = nil
	pc.Closed = false
}

// Close marks the end of the values; queued values can still be received.
func (pc *Pipe) Close() {
	pc.Closed = true
}

// Len returns the number of queued values.
func (pc *Pipe) Len() int {
	return len(pc.Data)
}

func (pc *Pipe) Receive() (value int64, err error) {
	if len(pc.Data) == 0 {
		if pc.Closed {
			err = io.EOF
		} else {
			err = ErrChannelEmpty
		}
		return
	}

	value = pc.Data[0]
	pc.Data = slices.Delete(pc.Data, 0, 1)
	return
}

func (pc *Pipe) Send(value int64) (err error) {
	if pc.Closed {
		err = ErrChannelClosed
		return
	}

	pc.Data = append(pc.Data, value)
	return
}
