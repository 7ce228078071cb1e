package demod

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-modem/modem"
	"github.com/cwbudde/algo-modem/modem/constellation"
)

// Decide maps every sample to the index of the nearest point of m by
// Euclidean distance. Equidistant points resolve to the lowest index. A
// NaN or infinite sample has no nearest point and fails the whole stream.
func Decide(samples []complex64, m constellation.Map) ([]int, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("demod: empty constellation map: %w", modem.ErrDecision)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("demod: empty sample stream: %w", modem.ErrDecision)
	}

	out := make([]int, len(samples))
	for i, s := range samples {
		c := complex128(s)
		if cmplx.IsNaN(c) || cmplx.IsInf(c) {
			return nil, fmt.Errorf("demod: sample %d is %v: %w", i, s, modem.ErrDecision)
		}
		out[i] = nearest(c, m)
	}
	return out, nil
}

func nearest(s complex128, m constellation.Map) int {
	best := 0
	bestDist := math.Inf(1)
	for k, p := range m {
		d := s - p
		// strict < keeps the lowest index on ties
		if dist := real(d)*real(d) + imag(d)*imag(d); dist < bestDist {
			best = k
			bestDist = dist
		}
	}
	return best
}

// QuadratureDemod returns the phase step between consecutive samples,
// angle(x[n]*conj(x[n+1])), one value shorter than the input. The sign
// convention makes a positive frequency produce negative steps.
func QuadratureDemod(samples []complex64) ([]float64, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("demod: %d samples for a discriminator: %w", len(samples), modem.ErrDecision)
	}

	out := make([]float64, len(samples)-1)
	for n := range out {
		out[n] = cmplx.Phase(complex128(samples[n]) * cmplx.Conj(complex128(samples[n+1])))
	}
	return out, nil
}

// SymbolsToBits expands each symbol into bitsPerSymbol bits, most
// significant first.
func SymbolsToBits(symbols []int, bitsPerSymbol int) ([]byte, error) {
	if bitsPerSymbol < 1 || bitsPerSymbol > 31 {
		return nil, fmt.Errorf("demod: %d bits per symbol: %w", bitsPerSymbol, modem.ErrConfiguration)
	}

	out := make([]byte, 0, len(symbols)*bitsPerSymbol)
	for i, s := range symbols {
		if s < 0 || s >= 1<<bitsPerSymbol {
			return nil, fmt.Errorf("demod: symbol %d at %d needs more than %d bits: %w", s, i, bitsPerSymbol, modem.ErrConfiguration)
		}
		for b := bitsPerSymbol - 1; b >= 0; b-- {
			out = append(out, byte(s>>b)&1)
		}
	}
	return out, nil
}

// BitsPerSymbol returns ceil(log2(m)), at least 1.
func BitsPerSymbol(m int) int {
	bits := 1
	for 1<<bits < m {
		bits++
	}
	return bits
}
