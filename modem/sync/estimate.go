package sync

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/spectrum"
	"github.com/cwbudde/algo-modem/dsp/window"
	"github.com/cwbudde/algo-modem/modem"
)

// Estimate is the outcome of EstimateFrequencyOffset.
type Estimate struct {
	// Offset is the carrier offset in Hz.
	Offset float64
	// Order is the power the samples were raised to.
	Order int
	// Bin is the peak FFT bin of the raised signal.
	Bin int
	// FFTSize is the transform length after zero padding.
	FFTSize int
	// BinWidth is the FFT bin spacing in Hz. The offset itself is
	// resolved to BinWidth/Order.
	BinWidth float64
	// Peak is the magnitude at Bin.
	Peak float64
}

// Resolution returns the offset quantization step in Hz.
func (e Estimate) Resolution() float64 {
	return e.BinWidth / float64(e.Order)
}

// EstimateFrequencyOffset estimates the residual carrier of samples by
// raising them to the given order, which strips order-fold symmetric
// modulation and leaves a tone at order times the offset. The tone is
// located at the largest bin of a zero-padded FFT.
//
// The estimate aliases once order*|offset| reaches fs/2. Declare the
// expected bound with WithMaxOffset to have that case rejected up front;
// without it only a peak on the Nyquist bin is detected.
func EstimateFrequencyOffset(samples []complex64, sampleRate float64, order int, opts ...Option) (Estimate, error) {
	cfg := applyOptions(opts)

	switch {
	case !(sampleRate > 0) || math.IsInf(sampleRate, 0):
		return Estimate{}, fmt.Errorf("sync: sample rate %v: %w", sampleRate, modem.ErrConfiguration)
	case order < 1:
		return Estimate{}, fmt.Errorf("sync: order %d: %w", order, modem.ErrConfiguration)
	case !core.IsPowerOf2(cfg.padFactor):
		return Estimate{}, fmt.Errorf("sync: pad factor %d: %w", cfg.padFactor, modem.ErrConfiguration)
	case cfg.maxOffset < 0 || math.IsNaN(cfg.maxOffset):
		return Estimate{}, fmt.Errorf("sync: max offset %v: %w", cfg.maxOffset, modem.ErrConfiguration)
	case len(samples) == 0:
		return Estimate{}, fmt.Errorf("sync: no samples to estimate from: %w", modem.ErrEstimation)
	}

	nyquist := sampleRate / 2
	if cfg.maxOffset > 0 && float64(order)*cfg.maxOffset >= nyquist {
		return Estimate{}, fmt.Errorf("sync: order %d times max offset %v Hz reaches Nyquist %v Hz: %w",
			order, cfg.maxOffset, nyquist, modem.ErrEstimation)
	}

	raised := make([]complex128, len(samples))
	for i, v := range samples {
		x := complex128(v)
		acc := x
		for j := 1; j < order; j++ {
			acc *= x
		}
		raised[i] = acc
	}

	raised, err := window.ApplyComplex(cfg.spectralWindow, raised)
	if err != nil {
		return Estimate{}, fmt.Errorf("sync: spectral window: %w", errors.Join(modem.ErrConfiguration, err))
	}

	size := core.NextPowerOf2(len(raised)) * cfg.padFactor
	bins, err := spectrum.Transform(raised, size)
	if err != nil {
		return Estimate{}, fmt.Errorf("sync: offset spectrum: %w", err)
	}

	mag := spectrum.Magnitude(bins)
	bin, peak := spectrum.PeakBin(mag)

	floor := peak
	for _, m := range mag {
		floor = math.Min(floor, m)
	}
	if !(peak > 0) || math.IsInf(peak, 0) || peak-floor <= 1e-12*peak {
		return Estimate{}, fmt.Errorf("sync: flat offset spectrum (peak %v): %w", peak, modem.ErrEstimation)
	}
	if size > 1 && bin == size/2 {
		return Estimate{}, fmt.Errorf("sync: offset peak on the Nyquist bin: %w", modem.ErrEstimation)
	}

	est := Estimate{
		Offset:   spectrum.BinFrequency(bin, size, sampleRate) / float64(order),
		Order:    order,
		Bin:      bin,
		FFTSize:  size,
		BinWidth: spectrum.BinWidth(size, sampleRate),
		Peak:     peak,
	}

	if cfg.maxOffset > 0 && math.Abs(est.Offset) > cfg.maxOffset {
		return est, fmt.Errorf("sync: estimated offset %v Hz beyond declared %v Hz: %w", est.Offset, cfg.maxOffset, modem.ErrEstimation)
	}

	return est, nil
}

// Derotate mixes samples down by offset Hz. start is the index of
// samples[0] in the original capture, so the correction phase is
// -2*pi*offset*(start+n)/fs on the capture's own time axis and trimming
// does not add a constant rotation.
func Derotate(samples []complex64, sampleRate, offset float64, start int) ([]complex64, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("sync: sample rate %v: %w", sampleRate, modem.ErrConfiguration)
	}
	if start < 0 {
		return nil, fmt.Errorf("sync: start %d: %w", start, modem.ErrConfiguration)
	}

	out := make([]complex64, len(samples))
	for n, v := range samples {
		cycles := offset * float64(start+n) / sampleRate
		cycles -= math.Floor(cycles)
		sin, cos := math.Sincos(-2 * math.Pi * cycles)
		out[n] = complex64(complex128(v) * complex(cos, sin))
	}
	return out, nil
}
