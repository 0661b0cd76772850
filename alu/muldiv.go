package alu

import (
	"github.com/hwsim/fp8alu/fp8"
)

// Multiply/divide intermediates carry the significand in 1/256 units:
// the leading bit of a normalized value sits at bit 8, the four retained
// fraction bits at 7..4. Low bits are truncated, not rounded; the add
// path is the only one that rounds. See the package comment.
const (
	prodLead  = uint32(1) << 8
	prodTwo   = uint32(1) << 9
	quotShift = 8 // fraction bits retained by the quotient pre-shift
)

func (alu *Alu) mul(a, b fp8.Value) (res Result) {
	mode := alu.Mode
	if a.IsZeroIn(mode) || b.IsZeroIn(mode) {
		res.Flags.Zero = true
		return
	}

	neg := a.IsNeg() != b.IsNeg()
	sigA, expA := a.Significand(mode)
	sigB, expB := b.Significand(mode)
	e := int(expA) + int(expB) - fp8.Bias

	p := uint32(sigA) * uint32(sigB)
	switch {
	case p&prodTwo != 0:
		// Product of two normalized significands lands in [1.0, 4.0);
		// fold the top half back into the window.
		p >>= 1
		e++
	case p&prodLead != 0:
		// Already in [1.0, 2.0).
	default:
		// Denormal operands leave the product below 1.0.
		for p&prodLead == 0 {
			p <<= 1
			e--
		}
	}

	return clampTrunc(p, e, neg, mode)
}

func (alu *Alu) div(a, b fp8.Value) (res Result) {
	mode := alu.Mode
	if b.IsZeroIn(mode) {
		// Division by zero is both invalid and an overflow, by
		// convention; the sentinel carries the XOR sign.
		res.Flags.Invalid = true
		res.Flags.Overflow = true
		res.Value = saturate(a.IsNeg() != b.IsNeg())
		return
	}
	if a.IsZeroIn(mode) {
		res.Flags.Zero = true
		return
	}

	neg := a.IsNeg() != b.IsNeg()
	sigA, expA := a.Significand(mode)
	sigB, expB := b.Significand(mode)
	e := int(expA) - int(expB) + fp8.Bias

	// Pre-shift the dividend so the integer quotient keeps quotShift
	// fraction bits. For normalized operands the quotient lands in
	// (0.5, 2.0); denormal operands can push it further either way.
	q := (uint32(sigA) << quotShift) / uint32(sigB)
	for q >= prodTwo {
		q >>= 1
		e++
	}
	for q&prodLead == 0 {
		q <<= 1
		e--
	}

	return clampTrunc(q, e, neg, mode)
}

// clampTrunc turns a normalized significand (leading bit at prodLead)
// and a biased exponent into an encoded result, truncating the low bits
// and saturating outside the exponent range.
func clampTrunc(p uint32, e int, neg bool, mode fp8.Mode) (res Result) {
	if e > fp8.MaxExp {
		res.Flags.Overflow = true
		res.Value = saturate(neg)
		return
	}

	if e < 1 {
		res.Flags.Underflow = true
		if mode != fp8.Denormal {
			res.Flags.Zero = true
			res.Value = fp8.FromParts(neg, 0, 0)
			return
		}
		shift := 1 - e
		if shift >= 32 {
			p = 0
		} else {
			p >>= uint(shift)
		}
		frac := uint8(p>>4) & fp8.FracMask
		if frac == 0 {
			// Floor at the smallest denormal.
			frac = uint8(fp8.MinDenormal)
		}
		res.Value = fp8.FromParts(neg, 0, frac)
		return
	}

	res.Value = fp8.FromParts(neg, uint8(e), uint8(p>>4)&fp8.FracMask)
	return
}
