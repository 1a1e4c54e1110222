package cpu

import (
	"fmt"
	"log"
	"math"
	"slices"
)

// State is the execution state returned by Step and Run.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
	STATE_INPUT   = State(2) // input
	STATE_OUTPUT  = State(3) // output
)

// Cpu is the simulation context of an intcode processor.
type Cpu struct {
	Verbose      bool // Set to enable verbose logging.
	HaltOnOutput bool // Set to return STATE_OUTPUT after every output.
	NoSuspend    bool // Set to fail with ErrInputUnderflow rather than return STATE_INPUT.
	StepLimit    int  // Maximum steps per Run, 0 for unlimited.

	Memory       Memory  // Addressable memory.
	Ip           int64   // Current instruction pointer.
	RelativeBase int64   // Base address of relative mode operands.
	Input        Queue   // Pending input values.
	Output       []int64 // Output log.

	Ticks int // Instructions completed.

	halted bool
}

// NewCpu creates a processor with a copy of memory and pre-seeded input.
func NewCpu(memory []int64, input ...int64) (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset(memory)
	cpu.Input.Push(input...)

	return
}

// Reset the processor with a copy of memory.
// Run mode settings and the memory limit are preserved.
func (cpu *Cpu) Reset(memory []int64) {
	if cpu.Verbose {
		log.Printf("cpu: reset, %d words", len(memory))
	}

	cpu.Memory.Load(memory)
	cpu.Ip = 0
	cpu.RelativeBase = 0
	cpu.Input.Reset()
	cpu.Output = nil
	cpu.Ticks = 0
	cpu.halted = false
}

// Halted returns true once the halt instruction has executed.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// Push appends values to the input queue.
func (cpu *Cpu) Push(values ...int64) {
	cpu.Input.Push(values...)
}

// Last returns the most recent value in the output log.
func (cpu *Cpu) Last() (value int64, ok bool) {
	if len(cpu.Output) == 0 {
		return
	}

	return cpu.Output[len(cpu.Output)-1], true
}

// PopOutput removes and returns the oldest value in the output log.
func (cpu *Cpu) PopOutput() (value int64, ok bool) {
	if len(cpu.Output) == 0 {
		return
	}

	value = cpu.Output[0]
	cpu.Output = slices.Delete(cpu.Output, 0, 1)
	ok = true
	return
}

// Drain removes and returns all values in the output log.
func (cpu *Cpu) Drain() (values []int64) {
	values = cpu.Output
	cpu.Output = nil
	return
}

// String returns the current processor state as a string.
func (cpu *Cpu) String() (text string) {
	word, _ := cpu.Memory.Peek(cpu.Ip)
	inst, err := Decode(word)
	code := inst.String()
	if err != nil {
		code = "?"
	}

	text += fmt.Sprintf("%5s: %d (%d %v)\n", "ip", cpu.Ip, word, code)
	text += fmt.Sprintf("%5s: %d\n", "rb", cpu.RelativeBase)
	text += fmt.Sprintf("%5s: %d\n", "mem", cpu.Memory.Len())
	text += fmt.Sprintf("%5s: %v\n", "in", cpu.Input.Data)
	text += fmt.Sprintf("%5s: %v\n", "out", cpu.Output)
	text += fmt.Sprintf("%5s: %v\n", "halt", cpu.halted)

	return
}

// Fault wraps err with the instruction at the current IP.
func (cpu *Cpu) Fault(err error) error {
	word, _ := cpu.Memory.Peek(cpu.Ip)
	return &ErrRuntime{Ip: cpu.Ip, Word: word, Err: err}
}

// fetch returns the word at IP and advances IP.
func (cpu *Cpu) fetch() (word int64, err error) {
	word, err = cpu.Memory.Read(cpu.Ip)
	if err != nil {
		return
	}

	cpu.Ip++
	return
}

// relative returns the address of a relative mode operand.
func (cpu *Cpu) relative(offset int64) (addr int64, err error) {
	addr, err = add(cpu.RelativeBase, offset)
	return
}

// read fetches the next operand word and resolves its value.
func (cpu *Cpu) read(mode Mode) (value int64, err error) {
	word, err := cpu.fetch()
	if err != nil {
		return
	}

	switch mode {
	case MODE_IMMEDIATE:
		value = word
	case MODE_POSITION:
		value, err = cpu.Memory.Read(word)
	case MODE_RELATIVE:
		var addr int64
		addr, err = cpu.relative(word)
		if err != nil {
			return
		}
		value, err = cpu.Memory.Read(addr)
	default:
		err = ErrModeUnknown
	}

	return
}

// target fetches the next operand word and resolves the address it writes.
func (cpu *Cpu) target(mode Mode) (addr int64, err error) {
	word, err := cpu.fetch()
	if err != nil {
		return
	}

	if !mode.Writable() {
		err = ErrWriteImmediate
		if !mode.Valid() {
			err = ErrModeUnknown
		}
		return
	}

	addr = word
	if mode == MODE_RELATIVE {
		addr, err = cpu.relative(word)
	}

	return
}

// write fetches the next operand word and stores value at its address.
func (cpu *Cpu) write(mode Mode, value int64) (err error) {
	addr, err := cpu.target(mode)
	if err != nil {
		return
	}

	err = cpu.Memory.Write(addr, value)
	return
}

// retry rewinds IP to the start of an instruction that could not complete.
func (cpu *Cpu) retry(ip int64) {
	if cpu.Verbose {
		log.Printf("cpu: %04d: retry", ip)
	}

	cpu.Ip = ip
}

// Step fetches, decodes and executes a single instruction.
// A halted processor stays halted.
func (cpu *Cpu) Step() (state State, err error) {
	if cpu.halted {
		state = STATE_HALTED
		return
	}

	ip := cpu.Ip
	var word int64
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, Word: word, Err: err}
		}
	}()

	word, err = cpu.fetch()
	if err != nil {
		return
	}

	inst, err := Decode(word)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %04d: %v", ip, inst)
	}

	state, err = cpu.Execute(inst)
	if err != nil {
		return
	}

	switch state {
	case STATE_INPUT:
		cpu.retry(ip)
		return
	case STATE_HALTED:
		cpu.halted = true
	}

	cpu.Ticks++

	return
}

// Execute executes a decoded instruction whose opcode word has already been
// consumed; IP addresses its first operand.
func (cpu *Cpu) Execute(inst Instruction) (state State, err error) {
	mode := inst.Modes

	switch inst.Op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		var a, b, value int64
		a, err = cpu.read(mode[0])
		if err != nil {
			return
		}
		b, err = cpu.read(mode[1])
		if err != nil {
			return
		}
		switch inst.Op {
		case OP_ADD:
			value, err = add(a, b)
		case OP_MUL:
			value, err = mul(a, b)
		case OP_LT:
			value = boolValue(a < b)
		case OP_EQ:
			value = boolValue(a == b)
		}
		if err != nil {
			return
		}
		err = cpu.write(mode[2], value)
	case OP_IN:
		if cpu.Input.Empty() {
			if cpu.NoSuspend {
				err = ErrInputUnderflow
				return
			}
			state = STATE_INPUT
			return
		}
		// Resolve the target first, so a fault leaves the value queued.
		var addr int64
		addr, err = cpu.target(mode[0])
		if err != nil {
			return
		}
		value, _ := cpu.Input.Pop()
		if cpu.Verbose {
			log.Printf("cpu: input %d", value)
		}
		err = cpu.Memory.Write(addr, value)
	case OP_OUT:
		var value int64
		value, err = cpu.read(mode[0])
		if err != nil {
			return
		}
		if cpu.Verbose {
			log.Printf("cpu: output %d", value)
		}
		cpu.Output = append(cpu.Output, value)
		if cpu.HaltOnOutput {
			state = STATE_OUTPUT
		}
	case OP_JT, OP_JF:
		var cond, dest int64
		cond, err = cpu.read(mode[0])
		if err != nil {
			return
		}
		dest, err = cpu.read(mode[1])
		if err != nil {
			return
		}
		if (cond != 0) == (inst.Op == OP_JT) {
			if dest < 0 {
				err = ErrAddressNegative
				return
			}
			cpu.Ip = dest
		}
	case OP_RB:
		var offset int64
		offset, err = cpu.read(mode[0])
		if err != nil {
			return
		}
		cpu.RelativeBase, err = add(cpu.RelativeBase, offset)
	case OP_HALT:
		state = STATE_HALTED
	default:
		err = ErrOpcodeUnknown
	}

	return
}

// Run steps until the processor halts, needs input, produces output (if
// HaltOnOutput is set), or fails.
func (cpu *Cpu) Run() (state State, err error) {
	for steps := 0; ; steps++ {
		if cpu.StepLimit > 0 && steps >= cpu.StepLimit {
			err = cpu.Fault(ErrStepLimit)
			return
		}

		state, err = cpu.Step()
		if err != nil || state != STATE_RUNNING {
			return
		}
	}
}

// RunWith pushes values to the input queue, then runs.
func (cpu *Cpu) RunWith(values ...int64) (state State, err error) {
	cpu.Push(values...)
	return cpu.Run()
}

// RunToHalt runs until the processor halts, using only the input already
// queued. Running out of input fails with ErrInputUnderflow.
func (cpu *Cpu) RunToHalt() (err error) {
	for {
		var state State
		state, err = cpu.Run()
		if err != nil {
			return
		}

		switch state {
		case STATE_HALTED:
			return
		case STATE_INPUT:
			err = cpu.Fault(ErrInputUnderflow)
			return
		}
	}
}

// Snapshot returns a copy of the current memory contents.
func (cpu *Cpu) Snapshot() []int64 {
	return slices.Clone(cpu.Memory.Data)
}

func boolValue(cond bool) int64 {
	if cond {
		return 1
	}
	return 0
}

// add returns a + b, or ErrOverflow.
func add(a, b int64) (sum int64, err error) {
	sum = a + b
	if (sum > a) != (b > 0) {
		sum = 0
		err = ErrOverflow
	}
	return
}

// mul returns a * b, or ErrOverflow.
func mul(a, b int64) (product int64, err error) {
	if a == 0 || b == 0 {
		return
	}

	product = a * b
	if product/b != a ||
		(a == -1 && b == math.MinInt64) ||
		(b == -1 && a == math.MinInt64) {
		product = 0
		err = ErrOverflow
	}
	return
}
