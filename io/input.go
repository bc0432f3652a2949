package io

import (
	"fmt"
	"io"
)

// Input feeds lines of text to the program, one line per ready cycle.
type Input struct {
	Port
	Lines   []string  // Pending input lines.
	Journal io.Writer // If set, receives '< line' for every line delivered.

	next int
}

var _ Device = (*Input)(nil)

// Rewind restarts delivery from the first line.
func (in *Input) Rewind() {
	in.next = 0
}

// Pending returns the number of lines not yet delivered.
func (in *Input) Pending() int {
	return len(in.Lines) - in.next
}

// Poll delivers the next line when the program has consumed the previous
// one (ready is clear). The line is truncated or zero padded to the buffer
// size, and ready is set.
func (in *Input) Poll() (err error) {
	defer func() {
		if err != nil {
			err = &ErrDevice{ID: in.ID, Err: err}
		}
	}()

	ready, err := in.Ready()
	if err != nil || ready {
		return
	}

	if in.next >= len(in.Lines) {
		return
	}

	written, err := in.WriteBytes([]byte(in.Lines[in.next]))
	if err != nil {
		return
	}

	if in.Journal != nil {
		_, err = fmt.Fprintf(in.Journal, "< %s\n", written)
		if err != nil {
			return
		}
	}

	in.next++

	err = in.SetReady(true)
	return
}
