package alu

import (
	"github.com/hwsim/fp8alu/fp8"
)

// Extended significand layout, used by the add/subtract path. The 5-bit
// significand (implicit bit included) sits above three extra bits that
// hold the guard, round and sticky state collected while shifting.
//
//	bit 8   carry out of an addition
//	bit 7   leading (implicit) significand bit
//	bits 6-3  fraction
//	bit 2   guard
//	bit 1   round
//	bit 0   sticky
const (
	grsBits   = 3
	leadBit   = uint16(1) << 7
	carryBit  = uint16(1) << 8
	guardBit  = uint16(1) << 2
	roundBit  = uint16(1) << 1
	stickyBit = uint16(1) << 0
)

// align shifts an extended significand right to a larger exponent scale,
// OR-reducing every shifted-out bit into the sticky position. Shifts at
// or beyond the extended width collapse to bare sticky state.
func align(ext uint16, by uint8) uint16 {
	if by == 0 {
		return ext
	}
	if by >= 8 {
		if ext != 0 {
			return stickyBit
		}
		return 0
	}
	sticky := uint16(0)
	if ext&(1<<by-1) != 0 {
		sticky = stickyBit
	}
	return ext>>by | sticky
}

// addSigned implements both ADD and SUB; subtraction flips the sign of
// the second operand and adds.
func (alu *Alu) addSigned(a, b fp8.Value, negateB bool) (res Result) {
	mode := alu.Mode
	aZero := a.IsZeroIn(mode)
	bZero := b.IsZeroIn(mode)
	if negateB {
		b = b.Neg()
	}

	switch {
	case aZero && bZero:
		res.Flags.Zero = true
		return
	case aZero:
		res.Value = b
		return
	case bZero:
		res.Value = a
		return
	}

	sigA, expA := a.Significand(mode)
	sigB, expB := b.Significand(mode)
	extA := uint16(sigA) << grsBits
	extB := uint16(sigB) << grsBits

	// Align to the larger exponent.
	e := expA
	if expB > expA {
		e = expB
		extA = align(extA, expB-expA)
	} else {
		extB = align(extB, expA-expB)
	}

	// Sign-magnitude addition at a common scale. With differing signs
	// the smaller magnitude is subtracted from the larger, and the
	// larger operand donates the result sign.
	var sum uint16
	var neg bool
	if a.IsNeg() == b.IsNeg() {
		sum = extA + extB
		neg = a.IsNeg()
	} else if extA >= extB {
		sum = extA - extB
		neg = a.IsNeg()
	} else {
		sum = extB - extA
		neg = b.IsNeg()
	}

	if sum == 0 {
		// Exact cancellation has no sign in this format.
		res.Flags.Zero = true
		return
	}

	return normalizeRound(sum, e, neg, mode)
}

// normalizeRound renormalizes a raw extended sum into the 1.xxxx window
// and rounds to nearest using the guard, round and sticky bits.
func normalizeRound(sum uint16, e uint8, neg bool, mode fp8.Mode) (res Result) {
	carriedOut := sum&carryBit != 0
	if carriedOut {
		sticky := sum & stickyBit
		sum = sum>>1 | sticky
		e++
	}

	// Left shifts pull in zero bits only, never sticky state.
	for needsLeftShift := sum&leadBit == 0; needsLeftShift && e > 1; needsLeftShift = sum&leadBit == 0 {
		sum <<= 1
		e--
	}

	if sum&leadBit == 0 {
		// Exponent pinned at its minimum with the leading bit still
		// clear.
		return underflowed(sum, neg, mode)
	}

	frac := uint8(sum>>grsBits) & fp8.FracMask
	guard := sum&guardBit != 0
	round := sum&roundBit != 0
	sticky := sum&stickyBit != 0
	odd := frac&1 != 0
	if guard && (round || sticky || odd) {
		frac++
		if frac > fp8.FracMask {
			frac = 0
			e++
		}
	}

	if e > fp8.MaxExp {
		res.Flags.Overflow = true
		res.Value = saturate(neg)
		return
	}

	res.Value = fp8.FromParts(neg, e, frac)
	return
}

// underflowed produces the below-normal-range result for the add path:
// a denormal (floored at the smallest one) when the mode supports them,
// a signed zero otherwise.
func underflowed(sum uint16, neg bool, mode fp8.Mode) (res Result) {
	res.Flags.Underflow = true
	if mode == fp8.Denormal {
		frac := uint8(sum>>grsBits) & fp8.FracMask
		if frac == 0 {
			frac = uint8(fp8.MinDenormal)
		}
		res.Value = fp8.FromParts(neg, 0, frac)
		return
	}
	res.Flags.Zero = true
	res.Value = fp8.FromParts(neg, 0, 0)
	return
}
