package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRender(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		format Format
		data   []byte
		text   string
	}){
		{FORMAT_STRING, []byte("Hello"), "Hello"},
		{FORMAT_STRING, []byte("Hi\x00there"), "Hi"},
		{FORMAT_STRING, nil, ""},
		{FORMAT_INT, []byte{0x00, 0x00, 0x00, 0x2a}, "42"},
		{FORMAT_INT, []byte{0xff, 0xff, 0xff, 0xfe}, "-2"},
		{FORMAT_INT, []byte{0x80}, "-128"},
		{FORMAT_INT, nil, "0"},
		{FORMAT_UINT, []byte{0xff, 0xff, 0xff, 0xfe}, "4294967294"},
		{FORMAT_UINT, []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, "18446744073709551616"},
		{FORMAT_HEX, []byte{0x0a, 0xbc, 0x01}, "0ABC01"},
		{FORMAT_HEX, nil, ""},
	}

	for _, entry := range table {
		text, err := entry.format.Render(entry.data)
		assert.NoError(err, entry.format.String())
		assert.Equal(entry.text, text, "%v %v", entry.format, entry.data)
	}

	_, err := Format(42).Render(nil)
	assert.ErrorIs(err, ErrFormatUnknown)
	assert.Equal("Format(42)", Format(42).String())
}

func TestOutput(t *testing.T) {
	assert := assert.New(t)

	mem := make(testMemory, 0x40)
	mem[2] = 0x0000_0000
	mem[3] = 0x0600_0020
	mem[0x20] = 0x4865_6c6c
	mem[0x21] = 0x6f00_0000

	var console, journal bytes.Buffer
	out := &Output{
		Port:   Port{Memory: mem, ID: 1},
		Format: FORMAT_STRING,
		Sink:   &ConsoleSink{Console: &console, Journal: &journal},
	}

	// Not ready, nothing to do.
	assert.NoError(out.Poll())
	assert.Empty(console.String())

	mem[2] |= PORT_READY
	assert.NoError(out.Poll())
	assert.Equal(uint32(0), mem[2])
	assert.Equal("Output: Hello\n", console.String())
	assert.Equal("> Hello\n", journal.String())

	// Ready cleared, so no repeat.
	assert.NoError(out.Poll())
	assert.Equal("Output: Hello\n", console.String())
}

func TestFileSink(t *testing.T) {
	assert := assert.New(t)

	mem := make(testMemory, 0x40)
	mem[10] = PORT_READY
	mem[11] = 0x0400_0020
	mem[0x20] = 0xffff_ffd6

	var file bytes.Buffer
	out := &Output{
		Port:   Port{Memory: mem, ID: 5},
		Format: FORMAT_INT,
		Sink:   &FileSink{File: &file},
	}

	assert.NoError(out.Poll())
	assert.Equal("> -42\n", file.String())
}

type failingSink struct{}

var errSink = errors.New("sink failure")

func (failingSink) Emit(string) error {
	return errSink
}

func TestOutputSinkError(t *testing.T) {
	assert := assert.New(t)

	mem := make(testMemory, 0x40)
	mem[2] = PORT_READY
	mem[3] = 0x0100_0020

	out := &Output{
		Port: Port{Memory: mem, ID: 1},
		Sink: failingSink{},
	}

	err := out.Poll()
	assert.ErrorIs(err, errSink)
	// Ready is left set for a retry.
	assert.Equal(PORT_READY, mem[2])
}
