package mathutil

import (
	"math"
)

const (
	// SignMask covers the sign bit of a float64.
	SignMask = uint64(1) << 63
	// ExpMask covers the 11 exponent bits of a float64.
	ExpMask = uint64(0x7ff) << 52
	// FracMask covers the 52 fraction bits of a float64.
	FracMask = uint64(1)<<52 - 1

	// expOne is the exponent field of a float64 in [1, 2).
	expOne = uint64(1023) << 52

	// splitMask clears the low 27 significand bits, so that the head of a split
	// value multiplies exactly with another head.
	splitMask = ^uint64(1<<27 - 1)

	minNormal64 = 0x1p-1022
	minNormal32 = 0x1p-126
)

// IsFinite reports whether f is neither infinite nor NaN.
func IsFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// IsFinite32 reports whether f is neither infinite nor NaN.
func IsFinite32(f float32) bool {
	return IsFinite(float64(f))
}

// IsSubnormal reports whether f is nonzero with a magnitude below the smallest
// normal float64.
func IsSubnormal(f float64) bool {
	a := math.Abs(f)
	return a < minNormal64 && a > 0
}

// IsSubnormal32 reports whether f is nonzero with a magnitude below the smallest
// normal float32.
func IsSubnormal32(f float32) bool {
	a := math.Abs(float64(f))
	return a < minNormal32 && a > 0
}

// Split decomposes f into a head with the low 27 significand bits cleared and an
// exact tail, so that hi+lo == f and the product of two heads never rounds.
func Split(f float64) (hi, lo float64) {
	hi = math.Float64frombits(math.Float64bits(f) & (SignMask | ExpMask | splitMask&FracMask))
	return hi, f - hi
}

// WithExponentOne rewrites the exponent field of f so that the result lies in
// [1, 2), keeping sign and significand. f must be normal.
func WithExponentOne(f float64) float64 {
	return math.Float64frombits(math.Float64bits(f)&^ExpMask | expOne)
}

// HiDigit returns the 1-based position of the highest nonzero digit of f in the
// given base. Zero maps to position 0.
func HiDigit(f float64, base int) int {
	if f == 0 {
		return 0
	}
	a := math.Abs(f)
	if base == 2 {
		return 1 + math.Ilogb(a)
	}
	var d int
	if base == 10 {
		d = int(math.Floor(math.Log10(a)))
	} else {
		d = int(math.Floor(math.Log(a) / math.Log(float64(base))))
	}
	// the logarithm can land a hair off an exact power of the base
	b := float64(base)
	if math.Pow(b, float64(d)) > a {
		d--
	} else if math.Pow(b, float64(d+1)) <= a {
		d++
	}
	return 1 + d
}

// IntBounds returns the representable range of an integer type of the given
// width as float64 values: lo <= x < hi for in-range x.
func IntBounds(bits uint, signed bool) (lo, hi float64) {
	if signed {
		hi = math.Ldexp(1, int(bits-1))
		return -hi, hi
	}
	return 0, math.Ldexp(1, int(bits))
}
