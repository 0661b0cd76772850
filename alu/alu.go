package alu

import (
	"log"

	"github.com/hwsim/fp8alu/fp8"
)

// Flags are the status outputs of an evaluation. Several may be set at
// once: divide-by-zero raises both Invalid and Overflow.
type Flags struct {
	Overflow  bool // Magnitude exceeded the format; result saturated.
	Underflow bool // Magnitude fell below the normal range.
	Zero      bool // Result is exactly zero.
	Invalid   bool // Unrecognized selector, or zero divisor.
}

// String returns the flags as a compact "ouzi" mask, cleared flags
// dashed.
func (fl Flags) String() string {
	mask := []byte("----")
	if fl.Overflow {
		mask[0] = 'o'
	}
	if fl.Underflow {
		mask[1] = 'u'
	}
	if fl.Zero {
		mask[2] = 'z'
	}
	if fl.Invalid {
		mask[3] = 'i'
	}
	return string(mask)
}

// Result is an encoded value together with its status flags. It is
// returned by value; no flag state leaks between evaluations.
type Result struct {
	Value fp8.Value
	Flags Flags
}

// Alu models the arithmetic/logic unit. It carries configuration only;
// evaluation is pure and re-entrant, so a single Alu may be shared across
// goroutines.
type Alu struct {
	Verbose bool     // Set to enable verbose logging.
	Mode    fp8.Mode // Denormal handling variant.
}

// NewAlu creates an ALU with the given denormal handling mode.
func NewAlu(mode fp8.Mode) *Alu {
	return &Alu{Mode: mode}
}

var defaultAlu = Alu{Mode: fp8.Denormal}

// Evaluate computes a op b with the Denormal mode default.
func Evaluate(a, b fp8.Value, op Op) Result {
	return defaultAlu.Evaluate(a, b, op)
}

// Evaluate routes the selector to an operation and computes a op b.
// Logic operations work on the raw patterns and never raise flags; a
// selector outside the 3-bit space raises Invalid and yields zero.
func (alu *Alu) Evaluate(a, b fp8.Value, op Op) (res Result) {
	switch op {
	case OP_ADD:
		res = alu.addSigned(a, b, false)
	case OP_SUB:
		res = alu.addSigned(a, b, true)
	case OP_MUL:
		res = alu.mul(a, b)
	case OP_DIV:
		res = alu.div(a, b)
	case OP_AND:
		res.Value = a & b
	case OP_OR:
		res.Value = a | b
	case OP_XOR:
		res.Value = a ^ b
	case OP_NOT:
		res.Value = ^a
	default:
		res.Flags.Invalid = true
	}

	if alu.Verbose {
		log.Printf("alu: %v %v %v -> %v %v", op, a, b, res.Value, res.Flags)
	}

	return
}

// saturate returns the signed maximum-magnitude sentinel.
func saturate(neg bool) fp8.Value {
	if neg {
		return fp8.Min
	}
	return fp8.Max
}
