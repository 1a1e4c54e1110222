package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull   = errors.New(f("channel full"))
	ErrChannelEmpty  = errors.New(f("channel empty"))
	ErrChannelClosed = errors.New(f("channel closed"))
)

// ErrParseValue is a tape token that is not a value.
type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value", string(err))
}
