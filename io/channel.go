// Package io provides value channels for the intcode emulator.
// A channel supplies values to the input queue of a processor, or receives
// the values a processor writes to its output log. The package includes
// fixed input (Rom), text and byte streams (Tape), and an in-memory FIFO
// (Pipe) used to connect processors together.
package io

// Channel defines the interface for all I/O channels.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns the next value from the channel.
	// It returns ErrChannelEmpty if no value is available yet, and io.EOF
	// if no value will ever be available.
	Receive() (value int64, err error)
	// Send writes a value to the channel.
	Send(value int64) error
}
