// Copyright 2026 Aleksandr Demakin. All rights reserved.

package floats

import (
	"errors"
	"math"

	mu "github.com/avdva/floats/internal/mathutil"
)

// Mode selects the rounding direction. The names follow math/big.RoundingMode
// where the two packages overlap.
type Mode uint8

const (
	// ToNearestEven rounds to the nearest value, ties to the even one.
	ToNearestEven Mode = iota
	// ToNearestAway rounds to the nearest value, ties away from zero (C round).
	ToNearestAway
	// ToNearestUp rounds to the nearest value, ties toward +Inf (Java round).
	ToNearestUp
	// ToPositiveInf rounds up.
	ToPositiveInf
	// ToNegativeInf rounds down.
	ToNegativeInf
	// ToZero truncates.
	ToZero
)

func (m Mode) String() string {
	switch m {
	case ToNearestEven:
		return "ToNearestEven"
	case ToNearestAway:
		return "ToNearestAway"
	case ToNearestUp:
		return "ToNearestUp"
	case ToPositiveInf:
		return "ToPositiveInf"
	case ToNegativeInf:
		return "ToNegativeInf"
	case ToZero:
		return "ToZero"
	}
	return "Mode(unknown)"
}

// ErrDigitsConflict is returned when both Digits and SigDigits are supplied to
// a single rounding call.
var ErrDigitsConflict = errors.New("floats: digits and sigdigits cannot both be specified")

type roundConfig struct {
	digits    int
	sigdigits int
	base      int
	hasDigits bool
	hasSig    bool
}

// RoundOption configures RoundTo and its mode-specific shorthands.
type RoundOption func(*roundConfig)

// Digits rounds to n digits after the point in the configured base. Negative n
// rounds to multiples of base^-n.
func Digits(n int) RoundOption {
	return func(c *roundConfig) { c.digits = n; c.hasDigits = true }
}

// SigDigits rounds to n significant digits in the configured base.
func SigDigits(n int) RoundOption {
	return func(c *roundConfig) { c.sigdigits = n; c.hasSig = true }
}

// Base sets the digit base, 10 by default. Must be at least 2.
func Base(b int) RoundOption {
	return func(c *roundConfig) { c.base = b }
}

// Round rounds x to an integer value under m. Non-finite values and signed
// zeros are returned unchanged.
func Round[T Float](x T, m Mode) T {
	return T(roundMode(float64(x), m))
}

// RoundTo rounds x under m to the precision described by opts: a number of
// digits after the point, or a number of significant digits, in an arbitrary
// base. Supplying both Digits and SigDigits returns ErrDigitsConflict. With no
// options it is equivalent to Round.
func RoundTo[T Float](x T, m Mode, opts ...RoundOption) (T, error) {
	cfg := roundConfig{base: 10}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.hasDigits && cfg.hasSig {
		return 0, ErrDigitsConflict
	}
	switch {
	case cfg.hasDigits:
		return roundDigits(x, m, cfg.digits, cfg.base), nil
	case cfg.hasSig:
		return roundSigDigits(x, m, cfg.sigdigits, cfg.base), nil
	default:
		return Round(x, m), nil
	}
}

// Trunc rounds toward zero to an integer value.
func Trunc[T Float](x T) T { return Round(x, ToZero) }

// Floor rounds toward -Inf to an integer value.
func Floor[T Float](x T) T { return Round(x, ToNegativeInf) }

// Ceil rounds toward +Inf to an integer value.
func Ceil[T Float](x T) T { return Round(x, ToPositiveInf) }

// TruncTo is RoundTo with the ToZero mode.
func TruncTo[T Float](x T, opts ...RoundOption) (T, error) {
	return RoundTo(x, ToZero, opts...)
}

// FloorTo is RoundTo with the ToNegativeInf mode.
func FloorTo[T Float](x T, opts ...RoundOption) (T, error) {
	return RoundTo(x, ToNegativeInf, opts...)
}

// CeilTo is RoundTo with the ToPositiveInf mode.
func CeilTo[T Float](x T, opts ...RoundOption) (T, error) {
	return RoundTo(x, ToPositiveInf, opts...)
}

func roundMode(x float64, m Mode) float64 {
	switch m {
	case ToNearestAway:
		return math.Round(x)
	case ToNearestUp:
		return roundTiesUp(x)
	case ToPositiveInf:
		return math.Ceil(x)
	case ToNegativeInf:
		return math.Floor(x)
	case ToZero:
		return math.Trunc(x)
	default:
		return math.RoundToEven(x)
	}
}

// roundTiesUp rounds half toward +Inf. floor(x+0.5) alone is wrong whenever the
// addition itself rounds across an integer, so the exact residual of the sum is
// recovered with a two-sum and the floor is adjusted by it.
func roundTiesUp(x float64) float64 {
	if math.IsNaN(x) || math.Abs(x) >= 1<<52 {
		return x
	}
	s := x + 0.5
	var e float64
	if math.Abs(x) >= 0.5 {
		e = 0.5 - (s - x)
	} else {
		e = x - (s - 0.5)
	}
	y := math.Floor(s)
	if s == y && e < 0 {
		// the sum rounded up onto the integer, the true value is below it
		y--
	}
	return math.Copysign(y, x)
}

func roundDigits[T Float](x T, m Mode, digits, base int) T {
	if !mu.IsFinite(float64(x)) {
		return x
	}
	if digits >= 0 {
		sc := T(math.Pow(float64(base), float64(digits)))
		if !math.IsInf(float64(sc), 0) {
			if y := Round(x*sc, m) / sc; mu.IsFinite(float64(y)) {
				return y
			}
			// x*sc overflowed, so ulp(x) already exceeds the requested step
			return x
		}
		// base^digits overflows the type: rescale through base^(digits/2) twice
		h := T(math.Pow(float64(base), float64(digits)/2))
		if y := Round(x*h*h, m) / h / h; mu.IsFinite(float64(y)) {
			return y
		}
		return x
	}
	// negative digits round to multiples of a large step
	step := T(math.Pow(float64(base), float64(-digits)))
	if y := Round(x/step, m) * step; mu.IsFinite(float64(y)) {
		return y
	}
	switch {
	case x > 0:
		if m == ToPositiveInf {
			return T(math.Inf(1))
		}
		return 0
	case x < 0:
		if m == ToNegativeInf {
			return T(math.Inf(-1))
		}
		return T(math.Copysign(0, -1))
	default:
		return x
	}
}

func roundSigDigits[T Float](x T, m Mode, sigdigits, base int) T {
	fx := float64(x)
	if !mu.IsFinite(fx) {
		return x
	}
	return roundDigits(x, m, sigdigits-mu.HiDigit(fx, base), base)
}
