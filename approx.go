// Copyright 2026 Aleksandr Demakin. All rights reserved.

package floats

import (
	"math"
	"unsafe"

	mu "github.com/avdva/floats/internal/mathutil"
)

type approxConfig struct {
	atol    float64
	rtol    float64
	rtolSet bool
	defTol  float64
	defSet  bool
	nans    bool
	norm    func(float64) float64
}

// ApproxOption configures Approx, NotApprox and ApproxTo.
type ApproxOption func(*approxConfig)

// AbsTol sets the absolute tolerance. A positive absolute tolerance switches
// the default relative tolerance off.
func AbsTol(v float64) ApproxOption {
	return func(c *approxConfig) { c.atol = v }
}

// RelTol sets the relative tolerance, overriding the sqrt(eps) default.
func RelTol(v float64) ApproxOption {
	return func(c *approxConfig) { c.rtol = v; c.rtolSet = true }
}

// DefaultRelTol replaces the width-derived default relative tolerance, keeping
// the usual resolution rules: an explicit RelTol or a positive absolute
// tolerance still wins. Narrower formats layered on this package use it to
// carry their own sqrt(eps).
func DefaultRelTol(v float64) ApproxOption {
	return func(c *approxConfig) { c.defTol = v; c.defSet = true }
}

// EqualNaNs makes two NaN values compare as approximately equal.
func EqualNaNs() ApproxOption {
	return func(c *approxConfig) { c.nans = true }
}

// Norm replaces the absolute-value norm used for the difference and the
// operands.
func Norm(f func(float64) float64) ApproxOption {
	return func(c *approxConfig) { c.norm = f }
}

// Approx reports whether x and y are equal within tolerance:
//
//	norm(x-y) <= max(atol, rtol*max(norm(x), norm(y)))
//
// Exactly equal values always match. The relative tolerance defaults to
// sqrt(eps) of T, about half the significant digits of the width, unless a
// positive absolute tolerance is supplied. Non-finite values match only when
// exactly equal, or when both are NaN and EqualNaNs is set.
func Approx[T Float](x, y T, opts ...ApproxOption) bool {
	var cfg approxConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return approx(x, y, cfg)
}

// NotApprox is the complement of Approx.
func NotApprox[T Float](x, y T, opts ...ApproxOption) bool {
	return !Approx(x, y, opts...)
}

// Comparator is a reusable approximate-equality predicate with a bound right
// operand and a fixed tolerance configuration.
type Comparator[T Float] struct {
	y   T
	cfg approxConfig
}

// ApproxTo binds y and the tolerance options into a Comparator.
func ApproxTo[T Float](y T, opts ...ApproxOption) Comparator[T] {
	c := Comparator[T]{y: y}
	for _, opt := range opts {
		opt(&c.cfg)
	}
	return c
}

// Match reports whether x is approximately equal to the bound operand.
func (c Comparator[T]) Match(x T) bool {
	return approx(x, c.y, c.cfg)
}

func approx[T Float](x, y T, cfg approxConfig) bool {
	if x == y {
		return true
	}
	norm := cfg.norm
	if norm == nil {
		norm = math.Abs
	}
	rtol := cfg.rtol
	if !cfg.rtolSet {
		switch {
		case cfg.atol > 0:
			rtol = 0
		case cfg.defSet:
			rtol = cfg.defTol
		default:
			rtol = defaultRTol[T]()
		}
	}
	fx, fy := float64(x), float64(y)
	if mu.IsFinite(fx) && mu.IsFinite(fy) {
		tol := math.Max(cfg.atol, rtol*math.Max(norm(fx), norm(fy)))
		return norm(float64(x-y)) <= tol
	}
	return cfg.nans && math.IsNaN(fx) && math.IsNaN(fy)
}

// defaultRTol returns sqrt(eps) of the width of T.
func defaultRTol[T Float]() float64 {
	if unsafe.Sizeof(T(0)) == 4 {
		return 0x1.6a09e667f3bcdp-12 // sqrt(2^-23)
	}
	return 0x1p-26 // sqrt(2^-52)
}
