package io

import (
	"fmt"
	"io"
	"math/big"
	"strings"
)

// Format selects how an output buffer is rendered.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_STRING = Format(0) // string
	FORMAT_INT    = Format(1) // int
	FORMAT_UINT   = Format(2) // uint
	FORMAT_HEX    = Format(3) // hex
)

// Render converts the raw buffer bytes to text.
func (format Format) Render(data []byte) (text string, err error) {
	switch format {
	case FORMAT_STRING:
		if n := strings.IndexByte(string(data), 0); n >= 0 {
			data = data[:n]
		}
		text = string(data)
	case FORMAT_UINT:
		text = new(big.Int).SetBytes(data).String()
	case FORMAT_INT:
		value := new(big.Int).SetBytes(data)
		if len(data) > 0 && data[0]&0x80 != 0 {
			value.Sub(value, new(big.Int).Lsh(big.NewInt(1), uint(8*len(data))))
		}
		text = value.String()
	case FORMAT_HEX:
		text = fmt.Sprintf("%X", data)
	default:
		err = ErrFormatUnknown
	}

	return
}

// Sink receives rendered output.
type Sink interface {
	Emit(text string) error
}

// ConsoleSink prints 'Output: text' lines, and journals '> text'.
type ConsoleSink struct {
	Console io.Writer
	Journal io.Writer
}

func (sink *ConsoleSink) Emit(text string) (err error) {
	if sink.Console != nil {
		_, err = fmt.Fprintf(sink.Console, "Output: %s\n", text)
		if err != nil {
			return
		}
	}

	if sink.Journal != nil {
		_, err = fmt.Fprintf(sink.Journal, "> %s\n", text)
	}

	return
}

// FileSink writes '> text' lines.
type FileSink struct {
	File io.Writer
}

func (sink *FileSink) Emit(text string) (err error) {
	if sink.File != nil {
		_, err = fmt.Fprintf(sink.File, "> %s\n", text)
	}
	return
}

// Output drains the buffer whenever the program sets ready.
type Output struct {
	Port
	Format Format
	Sink   Sink
}

var _ Device = (*Output)(nil)

// Poll renders and emits the buffer when ready is set, then clears ready.
func (out *Output) Poll() (err error) {
	defer func() {
		if err != nil {
			err = &ErrDevice{ID: out.ID, Err: err}
		}
	}()

	ready, err := out.Ready()
	if err != nil || !ready {
		return
	}

	data, err := out.ReadBytes()
	if err != nil {
		return
	}

	text, err := out.Format.Render(data)
	if err != nil {
		return
	}

	if out.Sink != nil {
		err = out.Sink.Emit(text)
		if err != nil {
			return
		}
	}

	err = out.SetReady(false)
	return
}
