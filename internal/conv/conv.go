// Package conv provides checked integer narrowing for values handed to a
// solver backend.
//
// Repetition counts are validated against Config.MaxRepeat before they reach
// this package, so an overflow here is a programming error and panics.
package conv

import "math"

// IntToUint32 converts a non-negative int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
