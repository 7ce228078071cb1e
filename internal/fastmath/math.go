//go:build !fastmath

package fastmath

import "math"

// Sqrt computes sqrt(x) using standard library math.
func Sqrt(x float64) float64 {
	return math.Sqrt(x)
}
