package io

import (
	"errors"

	"github.com/ezrec/stackmc/translate"
)

var f = translate.From

var (
	// Device errors
	ErrPortInvalid   = errors.New(f("device port invalid"))
	ErrFormatUnknown = errors.New(f("output format unknown"))
)

// ErrDevice locates a device failure by port.
type ErrDevice struct {
	ID  int
	Err error
}

func (err *ErrDevice) Error() string {
	return f("dev%d: %v", err.ID, err.Err)
}

func (err *ErrDevice) Unwrap() error {
	return err.Err
}
