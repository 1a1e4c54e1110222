package emulator

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Network errors
	ErrDeadlock = errors.New(f("all stages waiting for input"))
	ErrNoSignal = errors.New(f("no output signal"))
)

// ErrStage indicates the network stage that failed.
type ErrStage struct {
	Stage int
	Err   error
}

func (err *ErrStage) Error() string {
	return f("stage %d %v", err.Stage, err.Err)
}

func (err *ErrStage) Unwrap() error {
	return err.Err
}
