// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	stdio "io"
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// Emulator state. CPU + program image + IO channels.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the program image.

	Input  io.Channel // Source of input values, nil for queued input only.
	Output io.Channel // Sink of output values, nil to keep the output log.
}

// NewEmulator creates a new emulator for a program.
func NewEmulator(prog *cpu.Program) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     prog.NewCpu(),
		Program: prog,
	}

	return
}

// Reset reloads the program image and rewinds the channels.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(emu.Program.Words)

	if emu.Input != nil {
		emu.Input.Rewind()
	}
	if emu.Output != nil {
		emu.Output.Rewind()
	}
}

// flush sends the output log to the output channel.
func (emu *Emulator) flush() (err error) {
	if emu.Output == nil {
		return
	}

	for _, value := range emu.Cpu.Drain() {
		err = emu.Output.Send(value)
		if err != nil {
			return emu.Cpu.Fault(err)
		}
	}

	return
}

// Run runs the processor, feeding it from the input channel.
// It returns STATE_INPUT if the input channel has no value yet,
// STATE_OUTPUT after each output if HaltOnOutput is set,
// or STATE_HALTED. The end of the input channel fails with
// cpu.ErrInputUnderflow.
func (emu *Emulator) Run() (state cpu.State, err error) {
	emu.Cpu.Verbose = emu.Verbose

	for {
		state, err = emu.Cpu.Run()
		if ferr := emu.flush(); err == nil {
			err = ferr
		}
		if err != nil {
			return
		}

		if state != cpu.STATE_INPUT {
			return
		}

		if emu.Input == nil {
			err = emu.Cpu.Fault(cpu.ErrInputUnderflow)
			return
		}

		var value int64
		value, err = emu.Input.Receive()
		switch {
		case err == nil:
			if emu.Verbose {
				log.Printf("emulator: received %d", value)
			}
			emu.Cpu.Push(value)
		case errors.Is(err, io.ErrChannelEmpty):
			err = nil
			return
		case errors.Is(err, stdio.EOF):
			err = emu.Cpu.Fault(errors.Join(cpu.ErrInputUnderflow, err))
			return
		default:
			err = emu.Cpu.Fault(err)
			return
		}
	}
}

// RunToHalt runs until the processor halts.
// Suspending for input, with nothing left to supply it, fails with
// cpu.ErrInputUnderflow.
func (emu *Emulator) RunToHalt() (err error) {
	for {
		var state cpu.State
		state, err = emu.Run()
		if err != nil {
			return
		}

		switch state {
		case cpu.STATE_HALTED:
			return
		case cpu.STATE_INPUT:
			err = emu.Cpu.Fault(cpu.ErrInputUnderflow)
			return
		}
	}
}
