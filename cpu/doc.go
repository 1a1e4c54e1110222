// Package cpu implements the intcode processor.
//
// The processor executes a self-modifying program held in a growable memory
// of signed 64-bit words. Each instruction word carries a two digit opcode
// and one addressing mode digit per operand (position, immediate or
// relative). Besides memory, the processor holds an instruction pointer (IP),
// a relative base, a FIFO input queue and an output log.
//
// Execution suspends cooperatively: when the program asks for input and the
// queue is empty, Step and Run return STATE_INPUT and the input instruction
// is retried once the caller has pushed a value. With HaltOnOutput set, Run
// also returns STATE_OUTPUT after every value written to the output log.
package cpu
