package script

import (
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

// ErrScript indicates a failure inside the named script.
type ErrScript struct {
	Name string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("script %v %v", err.Name, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

// ErrValue is a script value that is not an intcode word.
type ErrValue string

func (err ErrValue) Error() string {
	return f("%v is not an integer", string(err))
}
