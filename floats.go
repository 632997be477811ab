// Copyright 2026 Aleksandr Demakin. All rights reserved.

// Package floats implements precision-correct IEEE-754 helpers: rounding to a
// choice of precision under a selectable direction, approximate equality with
// per-width default tolerances, and a fused multiply-add that is bit-for-bit
// identical to hardware FMA even on platforms without one.
//
// Every function is a pure computation over its arguments, safe for concurrent
// use without synchronization.
package floats

// Float is the constraint for the supported binary floating-point widths.
// The 16-bit width is provided by the float16 subpackage.
type Float interface {
	~float32 | ~float64
}

// Integer is the constraint for integer rounding targets.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}
