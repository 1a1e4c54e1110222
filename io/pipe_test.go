package io

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipe_Fifo(t *testing.T) {
	assert := assert.New(t)

	pipe := &Pipe{}
	assert.NoError(pipe.Send(1))
	assert.NoError(pipe.Send(2))
	assert.Equal(2, pipe.Len())

	value, err := pipe.Receive()
	assert.NoError(err)
	assert.Equal(int64(1), value)

	value, err = pipe.Receive()
	assert.NoError(err)
	assert.Equal(int64(2), value)

	_, err = pipe.Receive()
	assert.Equal(ErrChannelEmpty, err)
}

func TestPipe_Close(t *testing.T) {
	assert := assert.New(t)

	pipe := &Pipe{}
	assert.NoError(pipe.Send(3))
	pipe.Close()

	assert.Equal(ErrChannelClosed, pipe.Send(4))

	value, err := pipe.Receive()
	assert.NoError(err)
	assert.Equal(int64(3), value)

	_, err = pipe.Receive()
	assert.Equal(io.EOF, err)

	pipe.Rewind()
	_, err = pipe.Receive()
	assert.Equal(ErrChannelEmpty, err)
	assert.NoError(pipe.Send(5))
}

func TestPipe_Release(t *testing.T) {
	assert := assert.New(t)

	pipe := &Pipe{Data: make([]int64, 0, 2)}
	assert.NoError(pipe.Send(1))
	assert.NoError(pipe.Send(2))

	_, err := pipe.Receive()
	assert.NoError(err)
	assert.Equal([]int64{2, 0}, pipe.Data[:cap(pipe.Data)])

	for n := range 1000 {
		assert.NoError(pipe.Send(int64(n)))
		_, err = pipe.Receive()
		assert.NoError(err)
	}
	assert.Equal(1, pipe.Len())
	assert.Equal(2, cap(pipe.Data))
}
