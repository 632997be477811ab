// Copyright 2026 Aleksandr Demakin. All rights reserved.

package floats

import (
	"math"
	"os"
	"sync"

	mu "github.com/avdva/floats/internal/mathutil"
)

// archFMA is set by the per-arch init when the CPU provides a fused
// multiply-add instruction.
var archFMA bool

var fmaCheck struct {
	once     sync.Once
	hardware bool
}

// Probe operands live in package scope so that the compiler cannot fold the
// arithmetic at build time.
var (
	probeOne = 1.0
	probeTie = 0x1p-53
	canaryA  = 1 + 0x1p-30
	canaryB  = 1 + 0x1p-30
	canaryC  = -(1 + 0x1p-29)
)

// verifyFloatEnv runs once, before the first dispatch. It checks that the FPU
// is in round-to-nearest-even (a native library loaded earlier in the process
// may have left another mode set) and that the native FMA agrees with the
// emulation on a double-rounding canary. Any mismatch keeps the hardware path
// disabled for the process lifetime.
func verifyFloatEnv() {
	fmaCheck.once.Do(func() {
		if probeOne+probeTie != probeOne || probeOne-probeTie/2 != probeOne {
			return
		}
		if math.FMA(canaryA, canaryB, canaryC) != fmaEmulated(canaryA, canaryB, canaryC) {
			return
		}
		fmaCheck.hardware = archFMA
	})
}

// noFMAEnv reports whether the FLOATS_NO_FMA environment variable disables the
// native path, mainly for tests and debugging.
func noFMAEnv() bool {
	return os.Getenv("FLOATS_NO_FMA") != ""
}

// HasHardwareFMA reports whether FMA dispatches to a native fused multiply-add
// instruction rather than the software emulation. Both produce identical bits.
func HasHardwareFMA() bool {
	verifyFloatEnv()
	return fmaCheck.hardware
}

// FMA returns a*b+c computed as if to infinite precision with a single
// rounding.
func FMA(a, b, c float64) float64 {
	verifyFloatEnv()
	if fmaCheck.hardware {
		return math.FMA(a, b, c)
	}
	return fmaEmulated(a, b, c)
}

// FMA32 returns a*b+c computed with a single rounding into a float32. The
// product of two float32 values is exact in float64, so a single widened
// addition rounds once; the only hazard is the narrowing of that sum.
func FMA32(a, b, c float32) float32 {
	ab := float64(a) * float64(b)
	fc := float64(c)
	res := ab + fc
	// A sum sitting exactly on a float32 tie with no sticky bits below may
	// have lost the true direction to the float64 rounding.
	if math.Float64bits(res)&0x1fffffff != 0x10000000 {
		return float32(res)
	}
	if !mu.IsFinite(res) {
		return float32(res)
	}
	var err float64
	if math.Abs(ab) > math.Abs(fc) {
		err = (ab - res) + fc
	} else {
		err = (fc - res) + ab
	}
	if err == 0 {
		return float32(res)
	}
	if math.Signbit(err) {
		return float32(math.Nextafter(res, math.Inf(-1)))
	}
	return float32(math.Nextafter(res, math.Inf(1)))
}

// twoMul returns the product of a and b as an exact head+tail pair: hi is the
// rounded product and lo the rounding error, recovered from the cross terms of
// the 27-bit splits.
func twoMul(a, b float64) (hi, lo float64) {
	ahi, alo := mu.Split(a)
	bhi, blo := mu.Split(b)
	blohi, blolo := mu.Split(blo)
	hi = a * b
	lo = alo*blohi - (((hi - ahi*bhi) - alo*bhi) - ahi*blo) + blolo*alo
	return hi, lo
}

// twoSum returns a+b as a rounded sum and its exact error.
func twoSum(a, b float64) (s, e float64) {
	s = a + b
	ap := s - b
	bp := s - ap
	return s, (a - ap) + (b - bp)
}

// oddRoundSum returns a+b rounded to odd: an inexact sum is nudged to the
// neighbor with an odd last significand bit. The odd bit carries the sticky
// information a following round-to-nearest needs, so the two roundings
// together behave like a single one.
func oddRoundSum(a, b float64) float64 {
	s, e := twoSum(a, b)
	if e != 0 && math.Float64bits(s)&1 == 0 {
		if e > 0 {
			return math.Nextafter(s, math.Inf(1))
		}
		return math.Nextafter(s, math.Inf(-1))
	}
	return s
}

// fmaEmulated computes a correctly rounded a*b+c without hardware support.
// The fast path is a compensated sum of the split product with c. Products in
// the subnormal-risk zone (below 2^-969 the compensation arithmetic itself can
// underflow) and subnormal multiplicands are rescaled into [1, 2) first.
func fmaEmulated(a, b, c float64) float64 {
	abhi, ablo := twoMul(a, b)
	if !mu.IsFinite(abhi+c) || math.Abs(abhi) < 0x1p-969 || mu.IsSubnormal(a) || mu.IsSubnormal(b) {
		abFinite := mu.IsFinite(a) && mu.IsFinite(b)
		if !(abFinite && mu.IsFinite(c)) {
			if abFinite {
				return c
			}
			return abhi + c
		}
		if a == 0 || b == 0 {
			// abhi+c keeps the sign of a zero result
			return abhi + c
		}
		bias := math.Ilogb(a) + math.Ilogb(b)
		if cs := math.Ldexp(c, -bias); mu.IsFinite(cs) {
			return fmaScaled(a, b, cs, bias)
		}
		if math.IsInf(abhi, 0) && math.Signbit(c) == (math.Signbit(a) != math.Signbit(b)) {
			return abhi
		}
	}
	r := abhi + c
	var e float64
	if math.Abs(abhi) > math.Abs(c) {
		e = abhi - r + c
	} else {
		e = c - r + abhi
	}
	// e is the exact error of r, so only the e+ablo addition can still lose
	// bits; round it to odd, or a tie in the final sum resolves to even when
	// the lost bits should have broken it.
	return r + oddRoundSum(e, ablo)
}

// fmaScaled computes a*b+c for the near-underflow cases: a and b are reduced
// to [1, 2), c arrives pre-scaled by 2^-bias, and the final sum is scaled back
// by 2^bias.
func fmaScaled(a, b, cs float64, bias int) float64 {
	if mu.IsSubnormal(a) {
		a *= 0x1p52
	}
	if mu.IsSubnormal(b) {
		b *= 0x1p52
	}
	a = mu.WithExponentOne(a)
	b = mu.WithExponentOne(b)
	abhi, ablo := twoMul(a, b)
	r := abhi + cs
	var e float64
	if math.Abs(abhi) > math.Abs(cs) {
		e = abhi - r + cs
	} else {
		e = cs - r + abhi
	}
	s := oddRoundSum(e, ablo)
	sumhi := r + s
	// Scaling a subnormal result back makes ldexp round a second time; fix the
	// last bit so the two roundings match a single correct one.
	if mu.IsSubnormal(math.Ldexp(sumhi, bias)) {
		sumlo := r - sumhi + s
		bitsLost := -1022 - math.Ilogb(sumhi) + bias
		if (bitsLost != 1) != (math.Float64bits(sumhi)&1 == 1) {
			if sumlo > 0 {
				sumhi = math.Nextafter(sumhi, math.Inf(1))
			} else if sumlo < 0 {
				sumhi = math.Nextafter(sumhi, math.Inf(-1))
			}
		}
	}
	return math.Ldexp(sumhi, bias)
}
