//go:build fastmath

package fastmath

import "github.com/meko-christian/algo-approx"

// Sqrt computes sqrt(x) using fast approximation.
func Sqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
