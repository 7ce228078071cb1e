package testutil

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// DeterministicTone generates amplitude*exp(i*2*pi*freqHz*n/fs).
func DeterministicTone(freqHz, sampleRate, amplitude float64, length int) []complex128 {
	out := make([]complex128, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = complex(amplitude, 0) * cmplx.Exp(complex(0, step*float64(i)))
	}
	return out
}

// DeterministicSymbols returns length symbols in [0, m) from a fixed seed.
// The first m entries cycle through every value so the alphabet is complete.
func DeterministicSymbols(seed int64, m, length int) []int {
	out := make([]int, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		if i < m {
			out[i] = i
			continue
		}
		out[i] = rng.Intn(m)
	}
	return out
}

// PeakedQPSK builds an oversampled QPSK stream with stride samples per
// symbol whose magnitude peaks at offset peak inside every symbol period.
// Weights fall off linearly with circular distance from the peak.
func PeakedQPSK(symbols []int, stride, peak int) []complex64 {
	out := make([]complex64, len(symbols)*stride)
	for k, s := range symbols {
		theta := float64(s)*math.Pi/2 + math.Pi/4
		point := cmplx.Exp(complex(0, theta))
		for j := 0; j < stride; j++ {
			d := j - peak
			if d < 0 {
				d = -d
			}
			if stride-d < d {
				d = stride - d
			}
			w := 1 - float64(d)/float64(stride)
			out[k*stride+j] = complex64(complex(w, 0) * point)
		}
	}
	return out
}
