package alu

import (
	"github.com/hwsim/fp8alu/translate"
)

var f = translate.From

// The engine itself never fails: every operand pair and selector yields a
// defined result, with error-like conditions reported through Flags.
// Errors exist only at the text boundary, where operation names are
// parsed for scripts and the command line.

type ErrOpName string

func (err ErrOpName) Error() string {
	return f("'%v' is not an operation", string(err))
}
