package fastmath

import (
	"math"
	"testing"
)

// Tolerances cover both the stdlib and the approximated build.
func TestSqrt(t *testing.T) {
	for _, x := range []float64{0.25, 1, 2, 9, 1e4} {
		if got, want := Sqrt(x), math.Sqrt(x); math.Abs(got-want) > 1e-3*want {
			t.Fatalf("Sqrt(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestAbs(t *testing.T) {
	if got := Abs(3 + 4i); math.Abs(got-5) > 5e-3 {
		t.Fatalf("Abs(3+4i) = %v, want 5", got)
	}
}
