// Package script drives an intcode processor from a Starlark script.
//
// Top level statements of the script run before the processor starts, and may
// patch memory or queue input through the predeclared builtins:
//
//	peek(addr)            value of memory at addr
//	poke(addr, value)     store value at addr
//	push(value, ...)      append values to the input queue
//	halt_on_output(flag)  deliver outputs one at a time
//	state                 a mutable dict shared by all callbacks
//
// The script may define the callbacks:
//
//	input()         called when the processor waits for input; returns an
//	                integer or a sequence of integers to queue
//	output(value)   called for every value the processor outputs
//	halted()        called once, when the processor halts
package script

import (
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/intcode/cpu"
)

// Script is a Starlark driver for a processor.
type Script struct {
	Verbose bool   // If set, enables verbose logging.
	Name    string // Script file name, for messages.
	Source  []byte // Script source.

	State *starlark.Dict // Dict shared with the script as 'state'.
}

// NewScript creates a script from its source.
func NewScript(name string, source []byte) *Script {
	return &Script{
		Name:   name,
		Source: source,
		State:  starlark.NewDict(0),
	}
}

func (sc *Script) wrap(err error) error {
	if err == nil {
		return nil
	}
	return &ErrScript{Name: sc.Name, Err: err}
}

// toInt64 converts a Starlark integer to an intcode word.
func toInt64(v starlark.Value) (value int64, err error) {
	i, ok := v.(starlark.Int)
	if !ok {
		err = ErrValue(v.String())
		return
	}

	value, ok = i.Int64()
	if !ok {
		err = ErrValue(v.String())
	}
	return
}

// toInt64s converts an integer, or a sequence of integers, to words.
func toInt64s(v starlark.Value) (values []int64, err error) {
	if seq, ok := v.(starlark.Iterable); ok {
		iter := seq.Iterate()
		defer iter.Done()
		var x starlark.Value
		for iter.Next(&x) {
			var value int64
			value, err = toInt64(x)
			if err != nil {
				return
			}
			values = append(values, value)
		}
		return
	}

	value, err := toInt64(v)
	if err != nil {
		return
	}
	values = []int64{value}
	return
}

// builtins returns the predeclared names bound to the processor.
func (sc *Script) builtins(cp *cpu.Cpu) starlark.StringDict {
	peek := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var v starlark.Value
		err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v)
		if err != nil {
			return nil, err
		}
		addr, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		if addr < 0 {
			return nil, cpu.ErrAddressNegative
		}
		// Memory beyond its current size reads as zero.
		value, _ := cp.Memory.Peek(addr)
		return starlark.MakeInt64(value), nil
	}

	poke := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var va, vv starlark.Value
		err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &va, &vv)
		if err != nil {
			return nil, err
		}
		addr, err := toInt64(va)
		if err != nil {
			return nil, err
		}
		value, err := toInt64(vv)
		if err != nil {
			return nil, err
		}
		return starlark.None, cp.Memory.Write(addr, value)
	}

	push := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) != 0 {
			return nil, ErrValue(kwargs[0].String())
		}
		for _, arg := range args {
			value, err := toInt64(arg)
			if err != nil {
				return nil, err
			}
			cp.Push(value)
		}
		return starlark.None, nil
	}

	haltOnOutput := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var on bool
		err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &on)
		if err != nil {
			return nil, err
		}
		cp.HaltOnOutput = on
		return starlark.None, nil
	}

	return starlark.StringDict{
		"peek":           starlark.NewBuiltin("peek", peek),
		"poke":           starlark.NewBuiltin("poke", poke),
		"push":           starlark.NewBuiltin("push", push),
		"halt_on_output": starlark.NewBuiltin("halt_on_output", haltOnOutput),
		"state":          sc.State,
	}
}

// callback returns the named callable global, if the script defined one.
func callback(globals starlark.StringDict, name string) starlark.Callable {
	fn, ok := globals[name].(starlark.Callable)
	if !ok {
		return nil
	}
	return fn
}

// Run executes the script, then drives the processor until it halts.
func (sc *Script) Run(cp *cpu.Cpu) (err error) {
	if sc.State == nil {
		sc.State = starlark.NewDict(0)
	}

	thread := &starlark.Thread{
		Name: sc.Name,
		Print: func(thread *starlark.Thread, msg string) {
			log.Printf("%v: %v", sc.Name, msg)
		},
	}

	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, thread, sc.Name, sc.Source, sc.builtins(cp))
	if err != nil {
		return sc.wrap(err)
	}

	input := callback(globals, "input")
	output := callback(globals, "output")
	halted := callback(globals, "halted")

	for {
		var state cpu.State
		state, err = cp.Run()
		if err != nil {
			return
		}

		if output != nil {
			for _, value := range cp.Drain() {
				_, err = starlark.Call(thread, output, starlark.Tuple{starlark.MakeInt64(value)}, nil)
				if err != nil {
					return sc.wrap(err)
				}
			}
		}

		switch state {
		case cpu.STATE_HALTED:
			if halted != nil {
				_, err = starlark.Call(thread, halted, nil, nil)
				err = sc.wrap(err)
			}
			return
		case cpu.STATE_INPUT:
			if input == nil {
				return cp.Fault(cpu.ErrInputUnderflow)
			}
			var rc starlark.Value
			rc, err = starlark.Call(thread, input, nil, nil)
			if err != nil {
				return sc.wrap(err)
			}
			var values []int64
			values, err = toInt64s(rc)
			if err != nil {
				return sc.wrap(err)
			}
			if len(values) == 0 {
				return cp.Fault(cpu.ErrInputUnderflow)
			}
			if sc.Verbose {
				log.Printf("script: input %v", values)
			}
			cp.Push(values...)
		}
	}
}
