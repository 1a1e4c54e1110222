package io

import (
	"bufio"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Tape provides sequential I/O over byte streams.
// Values are read as base 10 integers separated by commas or whitespace, and
// written one per line. In Ascii mode each byte read is one value, and values
// in the range 0..255 are written as single bytes.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Ascii  bool

	scanner *bufio.Scanner
	reader  *bufio.Reader
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// scanValues is a bufio.SplitFunc for comma or space separated values.
func scanValues(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if !isSeparator(r) {
			break
		}
		start += width
	}

	for n := start; n < len(data); {
		r, width := utf8.DecodeRune(data[n:])
		if isSeparator(r) {
			return n + width, data[start:n], nil
		}
		n += width
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	return start, nil, nil
}

// Receive returns the next value from the input stream.
func (tc *Tape) Receive() (value int64, err error) {
	if tc.Input == nil {
		err = io.EOF
		return
	}

	if tc.Ascii {
		if tc.reader == nil {
			tc.reader = bufio.NewReader(tc.Input)
		}
		var one byte
		one, err = tc.reader.ReadByte()
		value = int64(one)
		return
	}

	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanner.Split(scanValues)
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	token := tc.scanner.Text()
	value, err = strconv.ParseInt(token, 10, 64)
	if err != nil {
		err = ErrParseValue(token)
	}

	return
}

// Send writes a value to the output stream.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	if tc.Ascii && value >= 0 && value <= 0xff {
		_, err = tc.Output.Write([]byte{byte(value)})
		return
	}

	text := strconv.AppendInt(nil, value, 10)
	text = append(text, '\n')
	_, err = tc.Output.Write(text)

	return
}
