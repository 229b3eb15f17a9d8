// Package convert narrows integers without silent overflow.
package convert

import (
	"fmt"
	"math"
)

type integer interface {
	~int | ~int64 | ~uint | ~uint64
}

// ToInt32 converts v, failing when it does not fit.
func ToInt32[T integer](v T) (int32, error) {
	if !fitsInt32(v) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int32", v)
	}
	return int32(v), nil
}

// ClampInt32 converts v, saturating at the int32 bounds.
func ClampInt32[T integer](v T) int32 {
	if fitsInt32(v) {
		return int32(v)
	}
	if v > 0 {
		return math.MaxInt32
	}
	return math.MinInt32
}

func fitsInt32[T integer](v T) bool {
	if v > 0 {
		return uint64(v) <= math.MaxInt32
	}
	return int64(v) >= math.MinInt32
}
