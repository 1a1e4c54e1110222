package emulator

import (
	"fmt"
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
)

// Network is a chain of emulators running the same program. The output of
// each stage is the input of the next; with Feedback set, the output of the
// last stage is also routed back to the first. Stages run cooperatively,
// each until it halts or waits for input, on the calling goroutine.
type Network struct {
	Verbose  bool    // If set, enables verbose logging.
	Feedback bool    // If set, loop the last stage back to the first.
	Phases   []int64 // First input of each stage.

	// Setup, if set, configures each stage processor after it is reset.
	Setup func(cp *cpu.Cpu)

	Program *cpu.Program
	Stage   []*Emulator

	pipe   []*io.Pipe // pipe[n] is the input of Stage[n].
	output *io.Pipe   // Output of the last stage.
}

// NewNetwork creates a network with one stage per phase setting.
func NewNetwork(prog *cpu.Program, phases []int64, feedback bool) (net *Network) {
	net = &Network{
		Feedback: feedback,
		Phases:   phases,
		Program:  prog,
		output:   &io.Pipe{},
	}

	for range phases {
		net.pipe = append(net.pipe, &io.Pipe{})
	}

	for n := range phases {
		stage := NewEmulator(prog)
		stage.Input = net.pipe[n]
		if n+1 < len(phases) {
			stage.Output = net.pipe[n+1]
		} else {
			stage.Output = net.output
		}
		net.Stage = append(net.Stage, stage)
	}

	return
}

// Reset all stages, and queue each phase setting.
func (net *Network) Reset() (err error) {
	for _, stage := range net.Stage {
		stage.Verbose = net.Verbose
		stage.Reset()
		if net.Setup != nil {
			net.Setup(stage.Cpu)
		}
	}

	for n, phase := range net.Phases {
		err = net.pipe[n].Send(phase)
		if err != nil {
			return
		}
	}

	return
}

// Run resets the network, sends signal to the first stage, and runs until
// the last stage halts. It returns the last value output by the last stage.
func (net *Network) Run(signal int64) (result int64, err error) {
	if len(net.Stage) == 0 {
		err = ErrNoSignal
		return
	}

	err = net.Reset()
	if err != nil {
		return
	}

	err = net.pipe[0].Send(signal)
	if err != nil {
		return
	}

	last := net.Stage[len(net.Stage)-1]
	var signalled bool

	for round := 0; !last.Halted(); round++ {
		progress := false
		for n, stage := range net.Stage {
			if stage.Halted() {
				continue
			}
			ticks := stage.Cpu.Ticks
			_, err = stage.Run()
			if err != nil {
				err = &ErrStage{Stage: n, Err: err}
				return
			}
			progress = progress || stage.Cpu.Ticks != ticks
		}

		for net.output.Len() > 0 {
			result, _ = net.output.Receive()
			signalled = true
			if net.Feedback {
				err = net.pipe[0].Send(result)
				if err != nil {
					return
				}
			}
		}

		if net.Verbose {
			log.Printf("emulator: network round %d, signal %d", round, result)
		}

		if !progress {
			err = ErrDeadlock
			return
		}
	}

	if !signalled {
		err = ErrNoSignal
	}

	return
}

// Search runs the network for every ordering of its phase settings, and
// returns the largest signal along with the ordering that produced it.
func (net *Network) Search(signal int64) (best int64, order []int64, err error) {
	for perm := range internal.IterPermutations(net.Phases) {
		trial := NewNetwork(net.Program, perm, net.Feedback)
		trial.Verbose = net.Verbose
		trial.Setup = net.Setup

		var result int64
		result, err = trial.Run(signal)
		if err != nil {
			err = fmt.Errorf("phases %v: %w", perm, err)
			return
		}
		if order == nil || result > best {
			best = result
			order = perm
		}
	}

	if order == nil {
		err = ErrNoSignal
	}

	return
}
