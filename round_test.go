// Copyright 2026 Aleksandr Demakin. All rights reserved.

package floats

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundModes(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x    float64
		m    Mode
		want float64
	}{
		{2.5, ToNearestEven, 2},
		{0.5, ToNearestEven, 0},
		{1.5, ToNearestEven, 2},
		{-1.5, ToNearestEven, -2},
		{-2.5, ToNearestEven, -2},
		{2.5, ToNearestAway, 3},
		{-2.5, ToNearestAway, -3},
		{0.5, ToNearestAway, 1},
		{2.5, ToNearestUp, 3},
		{-2.5, ToNearestUp, -2},
		{-3.5, ToNearestUp, -3},
		{0.5, ToNearestUp, 1},
		{2.3, ToPositiveInf, 3},
		{-2.3, ToPositiveInf, -2},
		{2.3, ToNegativeInf, 2},
		{-2.3, ToNegativeInf, -3},
		{2.7, ToZero, 2},
		{-2.7, ToZero, -2},
		{math.Inf(1), ToNearestEven, math.Inf(1)},
		{math.Inf(-1), ToNearestUp, math.Inf(-1)},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.want, Round(test.x, test.m), "round(%v, %v)", test.x, test.m)
		})
	}
	a.True(math.IsNaN(Round(math.NaN(), ToNearestEven)))
}

func TestRoundTiesUpBoundary(t *testing.T) {
	a := assert.New(t)
	// the largest float64 below 0.5: adding 0.5 rounds up to 1.0, a bare
	// floor(x+0.5) would answer 1
	x := math.Nextafter(0.5, 0)
	a.Equal(0.0, Round(x, ToNearestUp))
	a.Equal(-0.0, Round(-x, ToNearestUp))
	a.True(math.Signbit(Round(-x, ToNearestUp)))
	a.Equal(1.0, Round(math.Nextafter(0.5, 1), ToNearestUp))
	// just below 2.5: the sum is a rounding tie in float64
	y := math.Nextafter(2.5, 0)
	a.Equal(2.0, Round(y, ToNearestUp))
}

func TestRoundSignedZero(t *testing.T) {
	a := assert.New(t)
	for _, m := range []Mode{ToNearestEven, ToNearestAway, ToNearestUp, ToPositiveInf, ToNegativeInf, ToZero} {
		a.True(math.Signbit(Round(math.Copysign(0, -1), m)), "mode %v", m)
		a.False(math.Signbit(Round(0.0, m)), "mode %v", m)
	}
	a.True(math.Signbit(Round(-0.25, ToNearestEven)))
	a.True(math.Signbit(Round(-0.25, ToZero)))
	a.True(math.Signbit(Round(-0.25, ToPositiveInf)))
}

func TestRoundOrdering(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		x := (rng.Float64() - 0.5) * math.Ldexp(1, rng.Intn(60))
		up, down := Round(x, ToPositiveInf), Round(x, ToNegativeInf)
		even := Round(x, ToNearestEven)
		a.Equal(math.Trunc(x), Round(x, ToZero))
		a.True(up >= x, "x=%v", x)
		a.True(down <= x, "x=%v", x)
		a.True(down <= even && even <= up, "x=%v", x)
	}
}

func TestRoundToDigits(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x      float64
		m      Mode
		digits int
		base   int
		want   float64
	}{
		{2.25, ToNearestEven, 1, 10, 2.2},
		{2.75, ToNearestEven, 1, 10, 2.8},
		{123.456, ToNearestEven, 2, 10, 123.46},
		{123.456, ToZero, 2, 10, 123.45},
		{123.456, ToPositiveInf, 0, 10, 124},
		{-123.456, ToNegativeInf, 1, 10, -123.5},
		{12345, ToNearestEven, -2, 10, 12300},
		{12350, ToNearestEven, -2, 10, 12400},
		{0.0012345, ToNearestEven, 5, 10, 0.00123},
		{5.5, ToNearestEven, 0, 10, 6},
		{10.25, ToNearestEven, 1, 2, 10},         // tie between 20 and 21 halves
		{10.75, ToNearestEven, 1, 2, 11},
		{0x1p-600, ToNearestEven, 1100, 2, 0x1p-600}, // scale overflows, two-step path
		{1e300, ToNearestEven, 10, 10, 1e300},        // x*scale overflows, value already coarser
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			got, err := RoundTo(test.x, test.m, Digits(test.digits), Base(test.base))
			a.NoError(err)
			a.Equal(test.want, got, "roundto(%v, %v, digits=%d, base=%d)", test.x, test.m, test.digits, test.base)
		})
	}
}

func TestRoundToStepClamp(t *testing.T) {
	a := assert.New(t)
	got, err := RoundTo(1e300, ToPositiveInf, Digits(-400))
	a.NoError(err)
	a.True(math.IsInf(got, 1))

	got, err = RoundTo(1e300, ToNearestEven, Digits(-400))
	a.NoError(err)
	a.Equal(0.0, got)
	a.False(math.Signbit(got))

	got, err = RoundTo(-1e300, ToNegativeInf, Digits(-400))
	a.NoError(err)
	a.True(math.IsInf(got, -1))

	got, err = RoundTo(-1e300, ToZero, Digits(-400))
	a.NoError(err)
	a.Equal(0.0, got)
	a.True(math.Signbit(got))

	got, err = RoundTo(math.Copysign(0, -1), ToNearestEven, Digits(-400))
	a.NoError(err)
	a.True(math.Signbit(got))
}

func TestRoundToSigDigits(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x    float64
		sig  int
		base int
		want float64
	}{
		{123.456, 2, 10, 120},
		{123.456, 1, 10, 100},
		{123.456, 4, 10, 123.5},
		{0.0012345, 2, 10, 0.0012},
		{0, 3, 10, 0},
		{11, 3, 2, 12},
		{10, 3, 2, 10},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			got, err := RoundTo(test.x, ToNearestEven, SigDigits(test.sig), Base(test.base))
			a.NoError(err)
			a.Equal(test.want, got, "x=%v sig=%d base=%d", test.x, test.sig, test.base)
		})
	}
}

func TestRoundToNonFinite(t *testing.T) {
	a := assert.New(t)
	got, err := RoundTo(math.Inf(1), ToNearestEven, Digits(2))
	a.NoError(err)
	a.True(math.IsInf(got, 1))

	got, err = RoundTo(math.NaN(), ToNearestEven, SigDigits(3))
	a.NoError(err)
	a.True(math.IsNaN(got))
}

func TestRoundToConflict(t *testing.T) {
	a := assert.New(t)
	_, err := RoundTo(1.5, ToNearestEven, Digits(2), SigDigits(3))
	a.Equal(ErrDigitsConflict, err)
	_, err = TruncTo(1.5, SigDigits(3), Digits(2))
	a.Equal(ErrDigitsConflict, err)
}

func TestRoundToIdempotent(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		x := (rng.Float64() - 0.5) * math.Ldexp(1, rng.Intn(12))
		d := rng.Intn(7)
		r1, err := RoundTo(x, ToNearestEven, Digits(d))
		a.NoError(err)
		r2, err := RoundTo(r1, ToNearestEven, Digits(d))
		a.NoError(err)
		a.Equal(math.Float64bits(r1), math.Float64bits(r2), "x=%v digits=%d", x, d)
	}
}

// Dyadic values scale exactly in both binary and decimal, so the decimal
// package must agree on them digit for digit.
func TestRoundToDecimalCross(t *testing.T) {
	a := assert.New(t)
	values := []float64{0.5, 1.5, 2.5, -2.5, 2.25, -2.25, 2.75, 3.375, -3.375, 0.0625, 12.125}
	for _, x := range values {
		for d := 0; d <= 3; d++ {
			got, err := RoundTo(x, ToNearestEven, Digits(d))
			a.NoError(err)
			want, _ := decimal.NewFromFloat(x).RoundBank(int32(d)).Float64()
			a.Equal(want, got, "x=%v digits=%d", x, d)
		}
	}
}

func TestRoundFloat32(t *testing.T) {
	a := assert.New(t)
	a.Equal(float32(2), Round(float32(2.5), ToNearestEven))
	a.Equal(float32(3), Round(float32(2.5), ToNearestAway))
	got, err := RoundTo(float32(2.25), ToNearestEven, Digits(1))
	a.NoError(err)
	a.Equal(float32(2.2), got)
	got32, err := RoundTo(float32(123.456), ToNearestEven, SigDigits(2))
	a.NoError(err)
	a.Equal(float32(120), got32)
}

func TestTruncFloorCeil(t *testing.T) {
	a := assert.New(t)
	a.Equal(2.0, Trunc(2.9))
	a.Equal(-2.0, Trunc(-2.9))
	a.Equal(2.0, Floor(2.9))
	a.Equal(-3.0, Floor(-2.9))
	a.Equal(3.0, Ceil(2.1))
	a.Equal(-2.0, Ceil(-2.1))

	got, err := FloorTo(123.456, Digits(1))
	a.NoError(err)
	a.Equal(123.4, got)
	got, err = CeilTo(123.451, Digits(2))
	a.NoError(err)
	a.Equal(123.46, got)
}

func TestRoundToInt(t *testing.T) {
	a := assert.New(t)
	v32, err := RoundToInt[int32](2.7, ToNearestEven)
	a.NoError(err)
	a.Equal(int32(3), v32)

	v32, err = RoundToInt[int32](-2.5, ToNearestEven)
	a.NoError(err)
	a.Equal(int32(-2), v32)

	v32, err = RoundToInt[int32](2.5, ToNearestAway)
	a.NoError(err)
	a.Equal(int32(3), v32)

	v8, err := RoundToInt[uint8](255.4, ToNearestEven)
	a.NoError(err)
	a.Equal(uint8(255), v8)

	v8, err = RoundToInt[uint8](-0.9, ToZero)
	a.NoError(err)
	a.Equal(uint8(0), v8)

	v64, err := RoundToInt[int64](-9223372036854775808.0, ToZero)
	a.NoError(err)
	a.Equal(int64(math.MinInt64), v64)
}

func TestRoundToIntInexact(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x float64
		m Mode
	}{
		{1e300, ToNearestEven},
		{256, ToNearestEven},
		{255.5, ToNearestEven}, // rounds to 256
		{-1, ToZero},
		{math.NaN(), ToNearestEven},
		{math.Inf(1), ToZero},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			_, err := RoundToInt[uint8](test.x, test.m)
			var ie *InexactError
			a.True(errors.As(err, &ie), "x=%v", test.x)
			a.Equal("uint8", ie.Type)
		})
	}
	_, err := RoundToInt[int64](9223372036854775808.0, ToZero)
	a.Error(err)
}

func BenchmarkRound(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchFloat = Round(123456789.12345, ToNearestEven)
	}
}

func BenchmarkRoundToDigits(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchFloat, _ = RoundTo(123456789.12345, ToNearestEven, Digits(2))
	}
}

func BenchmarkRoundToDigitsDecimal(b *testing.B) {
	d := decimal.NewFromFloat(123456789.12345)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchDecimal = d.RoundBank(2)
	}
}
