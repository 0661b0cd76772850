package harness

import (
	"math"

	"github.com/hwsim/fp8alu/alu"
	"github.com/hwsim/fp8alu/fp8"
)

// conforms checks an evaluation against the reference model. Logic
// operations must match bit-for-bit with clear flags; arithmetic results
// must land within one format ULP of the real-valued result, with the
// saturation sentinel and flag sanity applied at the range boundaries.
// The flags are advisory, so the model accepts either outcome inside the
// rounding band around a boundary.
func (h *Harness) conforms(c Case, got alu.Result) bool {
	switch c.Op {
	case alu.OP_AND:
		return got == alu.Result{Value: c.A & c.B}
	case alu.OP_OR:
		return got == alu.Result{Value: c.A | c.B}
	case alu.OP_XOR:
		return got == alu.Result{Value: c.A ^ c.B}
	case alu.OP_NOT:
		return got == alu.Result{Value: ^c.A}
	}
	if !c.Op.Arithmetic() {
		return got.Flags.Invalid && got.Value == fp8.Zero
	}

	mode := h.Alu.Mode
	ra := fp8.ToFloat[float64](c.A, mode)
	rb := fp8.ToFloat[float64](c.B, mode)
	var r float64
	switch c.Op {
	case alu.OP_ADD:
		r = ra + rb
	case alu.OP_SUB:
		r = ra - rb
	case alu.OP_MUL:
		r = ra * rb
	case alu.OP_DIV:
		if rb == 0 {
			return got.Flags.Invalid && got.Flags.Overflow && got.Value.Abs() == fp8.Max
		}
		r = ra / rb
	}

	if got.Flags.Invalid {
		return false
	}
	if got.Flags.Zero && !got.Value.IsZero() {
		return false
	}

	maxMag := fp8.Decode(fp8.Max)
	if got.Flags.Overflow {
		return got.Value.Abs() == fp8.Max && math.Abs(r) >= maxMag-ulpOf(maxMag)
	}

	minNormal := math.Ldexp(1, 1-fp8.Bias)
	gotVal := fp8.ToFloat[float64](got.Value, mode)
	if got.Flags.Underflow {
		if math.Abs(r) >= minNormal {
			return false
		}
		if mode != fp8.Denormal {
			return got.Value.IsZero()
		}
	}

	return math.Abs(gotVal-r) <= ulpOf(r)
}

// ulpOf returns the spacing of the format around r, clamped into the
// representable exponent range.
func ulpOf(r float64) float64 {
	r = math.Abs(r)
	e := 1 - fp8.Bias // denormals share the smallest normal scale
	if r > 0 {
		if il := math.Ilogb(r); il > e {
			e = il
		}
		if max := fp8.MaxExp - fp8.Bias; e > max {
			e = max
		}
	}
	return math.Ldexp(1, e-fp8.FracBits)
}
