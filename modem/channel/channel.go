// Package channel applies the impairments of a simple radio link to a
// sample stream: additive white Gaussian noise, a fixed phase rotation, a
// carrier frequency offset and noise-only lead-in/lead-out. It exists to
// build realistic synthetic captures for the receive chain.
package channel

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/signal"
	"github.com/cwbudde/algo-modem/modem"
)

func noise(power float64, n int, seed int64) ([]complex128, error) {
	g := signal.NewGenerator(core.WithSeed(seed))
	w, err := g.AWGN(power, n)
	if err != nil {
		return nil, fmt.Errorf("channel: %w: %w", modem.ErrConfiguration, err)
	}
	return w, nil
}

// AddNoise returns samples plus complex white Gaussian noise of mean power
// power. The same seed reproduces the same noise.
func AddNoise(samples []complex64, power float64, seed int64) ([]complex64, error) {
	out := make([]complex64, len(samples))
	if len(samples) == 0 {
		return out, nil
	}

	w, err := noise(power, len(samples), seed)
	if err != nil {
		return nil, err
	}
	for i, v := range samples {
		out[i] = v + complex64(w[i])
	}
	return out, nil
}

// Rotate applies a fixed phase offset in degrees.
func Rotate(samples []complex64, degrees float64) []complex64 {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	r := complex(cos, sin)

	out := make([]complex64, len(samples))
	for i, v := range samples {
		out[i] = complex64(complex128(v) * r)
	}
	return out
}

// Shift moves samples up by hz, referenced to sample 0.
func Shift(samples []complex64, sampleRate, hz float64) ([]complex64, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("channel: sample rate %v: %w", sampleRate, modem.ErrConfiguration)
	}

	out := make([]complex64, len(samples))
	for n, v := range samples {
		cycles := hz * float64(n) / sampleRate
		cycles -= math.Floor(cycles)
		sin, cos := math.Sincos(2 * math.Pi * cycles)
		out[n] = complex64(complex128(v) * complex(cos, sin))
	}
	return out, nil
}

// PadWithNoise surrounds samples with n samples of noise on each side, as
// a receiver sees a burst inside a longer capture.
func PadWithNoise(samples []complex64, n int, power float64, seed int64) ([]complex64, error) {
	if n < 0 {
		return nil, fmt.Errorf("channel: padding %d: %w", n, modem.ErrConfiguration)
	}

	out := make([]complex64, len(samples)+2*n)
	copy(out[n:], samples)
	if n == 0 {
		return out, nil
	}

	w, err := noise(power, 2*n, seed)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		out[i] = complex64(w[i])
		out[n+len(samples)+i] = complex64(w[n+i])
	}
	return out, nil
}
