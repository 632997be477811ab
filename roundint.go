// Copyright 2026 Aleksandr Demakin. All rights reserved.

package floats

import (
	"fmt"
	"math"
	"unsafe"

	mu "github.com/avdva/floats/internal/mathutil"
)

// InexactError is returned when a rounded value cannot be represented by the
// requested integer type.
type InexactError struct {
	// Value is the rounded value that failed the conversion.
	Value float64
	// Type is the name of the target integer type.
	Type string
}

func (e *InexactError) Error() string {
	return fmt.Sprintf("floats: %v does not fit %s", e.Value, e.Type)
}

// RoundToInt rounds x under m and converts the result to T. NaN or a value
// outside the representable range of T returns *InexactError; no clamped
// result is produced.
func RoundToInt[T Integer](x float64, m Mode) (T, error) {
	r := roundMode(x, m)
	var zero T
	lo, hi := mu.IntBounds(uint(unsafe.Sizeof(zero))*8, zero-1 < zero)
	if math.IsNaN(r) || r < lo || r >= hi {
		return 0, &InexactError{Value: r, Type: fmt.Sprintf("%T", zero)}
	}
	return T(r), nil
}
