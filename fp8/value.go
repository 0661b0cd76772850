// Package fp8 implements an 8 bit minifloat encoding with 1 sign bit, a
// 3 bit exponent (bias 3) and a 4 bit fraction. Every one of the 256 bit
// patterns decodes to a value; there is no NaN and no true infinity. The
// maximum-exponent, maximum-fraction pattern doubles as the saturation
// sentinel for overflowed results.
package fp8

import (
	"fmt"
	"iter"
	"math"

	"golang.org/x/exp/constraints"
)

const (
	ExpBits  = 3 // Width of the exponent field.
	FracBits = 4 // Width of the fraction field.
	Bias     = 3 // Subtracted from the exponent field for the true exponent.

	SignMask = 0x80
	ExpMask  = 0x07
	FracMask = 0x0F
	MaxExp   = ExpMask
)

// Value is an encoded minifloat: sign(1) | exponent(3) | fraction(4).
// Values are immutable and compare bitwise.
type Value uint8

const (
	// Zero is the canonical zero encoding.
	Zero = Value(0x00)
	// NegZero is the signed zero encoding. It compares numerically equal
	// to Zero.
	NegZero = Value(0x80)
	// Max is the largest positive magnitude, and the positive saturation
	// sentinel for overflowed results.
	Max = Value(0x7F)
	// Min is the negative counterpart of Max.
	Min = Value(0xFF)
	// MinDenormal is the smallest positive denormal.
	MinDenormal = Value(0x01)
)

// Mode selects how an all-zero exponent field with a non-zero fraction is
// interpreted. The two variants decode the same bit patterns to different
// values and are never merged.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	// FlushToZero reads any zero-exponent pattern as zero.
	FlushToZero = Mode(0) // ftz
	// Denormal reads zero-exponent, non-zero-fraction patterns as
	// subnormals with a fixed unbiased exponent of -2.
	Denormal = Mode(1) // denorm
)

// SignBit returns the raw sign bit.
func (v Value) SignBit() uint8 {
	return uint8(v >> 7)
}

// IsNeg reports whether the sign bit is set.
func (v Value) IsNeg() bool {
	return v&SignMask != 0
}

// Exp returns the raw (biased) exponent field.
func (v Value) Exp() uint8 {
	return uint8(v>>FracBits) & ExpMask
}

// Frac returns the raw fraction field.
func (v Value) Frac() uint8 {
	return uint8(v) & FracMask
}

// IsZero reports whether the magnitude bits are all zero. Both signed
// zeros qualify.
func (v Value) IsZero() bool {
	return v&^SignMask == 0
}

// IsZeroIn reports whether v reads as zero under the given mode.
func (v Value) IsZeroIn(mode Mode) bool {
	if mode == Denormal {
		return v.IsZero()
	}
	return v.Exp() == 0
}

// Abs returns v with the sign bit cleared.
func (v Value) Abs() Value {
	return v &^ SignMask
}

// Neg returns v with the sign bit flipped.
func (v Value) Neg() Value {
	return v ^ SignMask
}

// FromParts assembles a value from a sign, an exponent field and a
// fraction field. The fields are masked to their widths.
func FromParts(neg bool, exp, frac uint8) (v Value) {
	v = Value(exp&ExpMask)<<FracBits | Value(frac&FracMask)
	if neg {
		v |= SignMask
	}
	return
}

// Significand returns the significand with the implicit leading bit
// restored, in sixteenths, along with the effective exponent field used
// for alignment. Denormals share the scale of the smallest normal
// exponent; under FlushToZero a zero-exponent pattern has no significand
// at all.
func (v Value) Significand(mode Mode) (sig, exp uint8) {
	exp = v.Exp()
	if exp == 0 {
		exp = 1
		if mode == Denormal {
			sig = v.Frac()
		}
		return
	}
	sig = 1<<FracBits | v.Frac()
	return
}

// ToFloat converts an encoded value to a real magnitude under the given
// mode. The conversion is exact; no rounding occurs.
func ToFloat[T constraints.Float](v Value, mode Mode) T {
	if v.IsZeroIn(mode) {
		return 0
	}
	var mag float64
	if v.Exp() == 0 {
		mag = math.Ldexp(float64(v.Frac()), -Bias-FracBits+1)
	} else {
		sig := float64(1<<FracBits|v.Frac()) / (1 << FracBits)
		mag = math.Ldexp(sig, int(v.Exp())-Bias)
	}
	if v.IsNeg() {
		mag = -mag
	}
	return T(mag)
}

// Decode returns the real value of an encoding, with denormal support.
func Decode(v Value) float64 {
	return ToFloat[float64](v, Denormal)
}

// Float returns the real value of the encoding, with denormal support.
func (v Value) Float() float64 {
	return Decode(v)
}

// Encode converts a real value to the nearest encoding, rounding the
// fraction to nearest with ties away from zero, and clamping out-of-range
// magnitudes to the saturation sentinel rather than failing. It is a
// convenience for building test vectors; the ALU never calls it.
func Encode(f float64) Value {
	if f == 0 {
		return Zero
	}
	neg := math.Signbit(f)
	mag := math.Abs(f)
	e := 0
	for mag >= 2 && e < MaxExp-Bias {
		mag /= 2
		e++
	}
	for mag < 1 && e > -Bias {
		mag *= 2
		e--
	}
	frac := int((1<<FracBits)*(mag-1) + 0.5)
	if frac < 0 {
		frac = 0
	}
	if frac > FracMask {
		frac = FracMask
	}
	e += Bias
	if e < 0 {
		e = 0
	}
	if e > MaxExp {
		e = MaxExp
	}
	return FromParts(neg, uint8(e), uint8(frac))
}

// Values returns an iterator over all 256 encodings, in bit-pattern order.
func Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for n := range 256 {
			if !yield(Value(n)) {
				return
			}
		}
	}
}

// String returns the fields of the encoding plus its decoded value.
func (v Value) String() string {
	return fmt.Sprintf("%d_%03b_%04b (%g)", v.SignBit(), v.Exp(), v.Frac(), v.Float())
}
