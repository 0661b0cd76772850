package harness

import (
	"errors"

	"github.com/hwsim/fp8alu/translate"
)

var f = translate.From

var (
	ErrNoVectors = errors.New(f("script defines no 'vectors' list"))
	ErrBadVector = errors.New(f("vector is not a (name, a, b, op[, want[, flags]]) tuple"))
)

type ErrScript struct {
	File string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("script %v: %v", err.File, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

type ErrVector struct {
	Index int
	Err   error
}

func (err *ErrVector) Error() string {
	return f("vector %d: %v", err.Index, err.Err)
}

func (err *ErrVector) Unwrap() error {
	return err.Err
}

type ErrBadNumber string

func (err ErrBadNumber) Error() string {
	return f("'%v' is not an 8-bit value", string(err))
}

type ErrUnknownFlag string

func (err ErrUnknownFlag) Error() string {
	return f("'%v' is not a flag letter", string(err))
}
