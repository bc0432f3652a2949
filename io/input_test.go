package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput(t *testing.T) {
	assert := assert.New(t)

	mem := make(testMemory, 0x40)
	mem[1] = 0x0500_0020
	mem[0x21] = 0xaabb_ccdd

	var journal bytes.Buffer
	in := &Input{
		Port:    Port{Memory: mem, ID: 0},
		Lines:   []string{"CSApp", "second line"},
		Journal: &journal,
	}

	assert.Equal(2, in.Pending())

	assert.NoError(in.Poll())
	assert.Equal(uint32(0x8000_0000), mem[0])
	assert.Equal(uint32(0x4353_4170), mem[0x20])
	assert.Equal(uint32(0x70bb_ccdd), mem[0x21])
	assert.Equal(1, in.Pending())

	// Not consumed yet.
	assert.NoError(in.Poll())
	assert.Equal(1, in.Pending())

	mem[0] = 0
	assert.NoError(in.Poll())
	assert.Equal(0, in.Pending())
	assert.Equal(uint32(0x7365_636f), mem[0x20])

	// Exhausted.
	mem[0] = 0
	assert.NoError(in.Poll())
	assert.Equal(uint32(0), mem[0])

	assert.Equal("< CSApp\n< secon\n", journal.String())

	in.Rewind()
	assert.Equal(2, in.Pending())
}

func TestInputInvalid(t *testing.T) {
	assert := assert.New(t)

	in := &Input{
		Port:  Port{Memory: make(testMemory, 0x40), ID: 99},
		Lines: []string{"x"},
	}

	err := in.Poll()
	assert.ErrorIs(err, ErrPortInvalid)

	var dev *ErrDevice
	if assert.ErrorAs(err, &dev) {
		assert.Equal(99, dev.ID)
	}
}

type failingWriter struct{}

var errJournal = errors.New("journal failure")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errJournal
}

func TestInputJournalError(t *testing.T) {
	assert := assert.New(t)

	mem := make(testMemory, 0x40)
	mem[1] = 0x0400_0020

	in := &Input{
		Port:    Port{Memory: mem, ID: 0},
		Lines:   []string{"line"},
		Journal: failingWriter{},
	}

	err := in.Poll()
	assert.ErrorIs(err, errJournal)

	var dev *ErrDevice
	if assert.ErrorAs(err, &dev) {
		assert.Equal(0, dev.ID)
	}
}
