// Package core provides the fundamental types shared by the engine and games:
// the frame buffer, cell attributes, input commands and small math helpers.
// It has no external dependencies so game logic stays pure and testable.
package core

import "math"

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Round rounds half away from zero to the nearest cell index.
func Round(v float64) int {
	return int(math.Round(v))
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
