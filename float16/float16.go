// Copyright 2026 Aleksandr Demakin. All rights reserved.

// Package float16 implements the IEEE-754 binary16 format on top of a uint16
// bit pattern, with correctly rounded conversions from both wider widths.
package float16

import (
	"math"
	"strconv"

	"github.com/avdva/floats"
)

// Num is a binary16 value: 1 sign bit, 5 exponent bits, 10 fraction bits.
type Num uint16

const (
	signMask = 0x8000
	expMask  = 0x7c00
	fracMask = 0x03ff
)

const (
	// Max is the largest finite value, 65504.
	Max = Num(0x7bff)
	// SmallestNonzero is the smallest positive (subnormal) value, 2^-24.
	SmallestNonzero = Num(0x0001)
)

// FromBits returns the value with the given bit pattern.
func FromBits(b uint16) Num { return Num(b) }

// Bits returns the bit pattern of n.
func (n Num) Bits() uint16 { return uint16(n) }

// Inf returns positive infinity if sign >= 0, negative infinity otherwise.
func Inf(sign int) Num {
	if sign >= 0 {
		return Num(expMask)
	}
	return Num(signMask | expMask)
}

// NaN returns a quiet NaN.
func NaN() Num { return Num(0x7e00) }

// IsNaN reports whether n is a NaN.
func (n Num) IsNaN() bool { return n&expMask == expMask && n&fracMask != 0 }

// IsInf reports whether n is an infinity matching sign: positive for sign > 0,
// negative for sign < 0, either for sign == 0.
func (n Num) IsInf(sign int) bool {
	if n&^signMask != expMask {
		return false
	}
	return sign == 0 || (sign > 0) == (n&signMask == 0)
}

// IsFinite reports whether n is neither infinite nor NaN.
func (n Num) IsFinite() bool { return n&expMask != expMask }

// Signbit reports whether the sign bit is set.
func (n Num) Signbit() bool { return n&signMask != 0 }

// IsZero reports whether n is a zero of either sign.
func (n Num) IsZero() bool { return n&^signMask == 0 }

// Subnormal reports whether n is nonzero with a zero exponent field.
func (n Num) Subnormal() bool { return n&expMask == 0 && n&fracMask != 0 }

// FromFloat32 converts f to binary16, rounding to nearest, ties to even, with
// full subnormal and overflow handling.
func FromFloat32(f float32) Num {
	b := math.Float32bits(f)
	sign := uint16(b >> 16 & signMask)
	b &^= 1 << 31
	if b >= 0x7f800000 {
		if b > 0x7f800000 {
			return Num(sign | 0x7e00)
		}
		return Num(sign | expMask)
	}
	coef := b & 0x007fffff
	exp := int32(b>>23) - 127 + 15
	switch {
	case exp >= 0x1f:
		return Num(sign | expMask)
	case exp <= 0:
		if exp < -10 {
			// below half the smallest subnormal
			return Num(sign)
		}
		c := coef | 0x00800000
		shift := uint32(14 - exp)
		m := c >> shift
		round := uint32(1) << (shift - 1)
		// round bit and (sticky or odd): round to even, carrying into the
		// exponent field when the significand overflows
		if c&round != 0 && c&(3*round-1) != 0 {
			m++
		}
		return Num(sign | uint16(m))
	default:
		m := coef >> 13
		round := uint32(1) << 12
		v := uint32(exp)<<10 | m
		if coef&round != 0 && coef&(3*round-1) != 0 {
			v++
		}
		return Num(sign | uint16(v))
	}
}

// FromFloat64 converts f to binary16 with a single rounding. Narrowing through
// float32 first could round twice and land on the wrong side of a tie.
func FromFloat64(f float64) Num {
	b := math.Float64bits(f)
	sign := uint16(b >> 48 & signMask)
	b &^= 1 << 63
	if b >= 0x7ff0000000000000 {
		if b > 0x7ff0000000000000 {
			return Num(sign | 0x7e00)
		}
		return Num(sign | expMask)
	}
	coef := b & (1<<52 - 1)
	exp := int64(b>>52) - 1023 + 15
	switch {
	case exp >= 0x1f:
		return Num(sign | expMask)
	case exp <= 0:
		if exp < -10 {
			return Num(sign)
		}
		c := coef | 1<<52
		shift := uint64(43 - exp)
		m := c >> shift
		round := uint64(1) << (shift - 1)
		if c&round != 0 && c&(3*round-1) != 0 {
			m++
		}
		return Num(sign | uint16(m))
	default:
		m := coef >> 42
		round := uint64(1) << 41
		v := uint64(exp)<<10 | m
		if coef&round != 0 && coef&(3*round-1) != 0 {
			v++
		}
		return Num(sign | uint16(v))
	}
}

// Float32 returns the exact float32 representation of n; every binary16 value
// is representable.
func (n Num) Float32() float32 {
	sign := uint32(n&signMask) << 16
	exp := uint32(n>>10) & 0x1f
	coef := uint32(n & fracMask)
	switch {
	case exp == 0x1f:
		if coef == 0 {
			return math.Float32frombits(sign | 0x7f800000)
		}
		return math.Float32frombits(sign | 0x7fc00000 | coef<<13)
	case exp == 0:
		if coef == 0 {
			return math.Float32frombits(sign)
		}
		e := uint32(127 - 15 + 1)
		for coef&0x400 == 0 {
			coef <<= 1
			e--
		}
		return math.Float32frombits(sign | e<<23 | (coef&fracMask)<<13)
	default:
		return math.Float32frombits(sign | (exp+127-15)<<23 | coef<<13)
	}
}

// Float64 returns the exact float64 representation of n.
func (n Num) Float64() float64 { return float64(n.Float32()) }

func (n Num) String() string {
	return strconv.FormatFloat(n.Float64(), 'g', -1, 32)
}

// FMA returns a*b+c rounded through float32 arithmetic. The product of two
// binary16 values is exact in float32, which strictly dominates the format.
func FMA(a, b, c Num) Num {
	return FromFloat32(floats.FMA32(a.Float32(), b.Float32(), c.Float32()))
}

// Round rounds n to an integer value under m. Integer-valued results are exact
// in float32, so the narrowing conversion never rounds.
func (n Num) Round(m floats.Mode) Num {
	return FromFloat32(floats.Round(n.Float32(), m))
}

// sqrtEps16 is sqrt(2^-10), about half the significant digits of the format.
const sqrtEps16 = 0x1p-5

// Approx reports whether x and y are equal within tolerance, following the
// rules of the floats package with the default relative tolerance taken from
// the binary16 width. An explicit RelTol or a positive AbsTol overrides it.
func Approx(x, y Num, opts ...floats.ApproxOption) bool {
	opts = append([]floats.ApproxOption{floats.DefaultRelTol(sqrtEps16)}, opts...)
	return floats.Approx(x.Float32(), y.Float32(), opts...)
}
