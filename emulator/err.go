package emulator

import (
	"errors"
	"strings"

	"github.com/ezrec/stackmc/translate"
)

var f = translate.From

var (
	ErrLimit     = errors.New(f("instruction limit reached"))
	ErrNoProgram = errors.New(f("no program loaded"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Instruction int      // Instructions completed before the error.
	Addr        uint32   // Address of the faulting instruction.
	Labels      []string // Labels at the faulting instruction, if any.
	Err         error
}

func (err *ErrRuntime) Error() string {
	if len(err.Labels) > 0 {
		return f("instruction %d at 0x%06x <- %v: %v", err.Instruction, err.Addr, strings.Join(err.Labels, ", "), err.Err)
	}
	return f("instruction %d at 0x%06x: %v", err.Instruction, err.Addr, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
