package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	For("en-US")
	assert.Equal("value 12,345", From("value %d", 12345))
	assert.Equal("plain text", From("plain text"))

	For("de-DE")
	assert.Equal("value 12.345", From("value %d", 12345))

	For("en-US")
}

func TestFor_Formatted(t *testing.T) {
	assert := assert.New(t)

	For("en-US")
	early := From("limit %d", 1000)

	For("de-DE")
	assert.Equal("limit 1,000", early)
	assert.Equal("limit 1.000", From("limit %d", 1000))

	For("en-US")
}
