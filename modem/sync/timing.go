package sync

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/resample"
	"github.com/cwbudde/algo-modem/internal/fastmath"
	"github.com/cwbudde/algo-modem/modem"
)

// Oversample interpolates samples by the integer factor up with a
// delay-compensated polyphase filter; output n*up lines up with input n.
// up == 1 returns a copy.
func Oversample(samples []complex64, up int, opts ...resample.Option) ([]complex64, error) {
	if up < 1 {
		return nil, fmt.Errorf("sync: oversampling factor %d: %w", up, modem.ErrConfiguration)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("sync: nothing to oversample: %w", modem.ErrDetection)
	}
	if up == 1 {
		return append([]complex64(nil), samples...), nil
	}

	ip, err := resample.NewInterpolator(up, opts...)
	if err != nil {
		return nil, fmt.Errorf("sync: interpolator: %w", err)
	}
	return oversampleWith(ip, samples)
}

func oversampleWith(ip *resample.Interpolator, samples []complex64) ([]complex64, error) {
	out, err := ip.Process(core.Widen(samples))
	if err != nil {
		return nil, fmt.Errorf("sync: interpolate: %w", err)
	}
	return core.Narrow(out), nil
}

// SearchTimingPhase picks the decimation phase in [0, stride) whose
// samples have the largest mean magnitude. Sampling at the symbol centre
// maximizes energy; sampling across transitions loses it. The first phase
// wins on ties. means[p] is the mean magnitude at phase p.
func SearchTimingPhase(samples []complex64, stride int) (phase int, means []float64, err error) {
	if stride < 1 {
		return 0, nil, fmt.Errorf("sync: stride %d: %w", stride, modem.ErrConfiguration)
	}
	if len(samples) < stride {
		return 0, nil, fmt.Errorf("sync: %d samples shorter than one symbol of %d: %w", len(samples), stride, modem.ErrConfiguration)
	}

	means = make([]float64, stride)
	best := math.Inf(-1)
	for p := range means {
		sum := 0.0
		count := 0
		for i := p; i < len(samples); i += stride {
			sum += fastmath.Abs(complex128(samples[i]))
			count++
		}
		means[p] = sum / float64(count)
		if means[p] > best {
			best = means[p]
			phase = p
		}
	}
	return phase, means, nil
}

// Decimate keeps every stride-th sample starting at phase.
func Decimate(samples []complex64, phase, stride int) ([]complex64, error) {
	if stride < 1 || phase < 0 || phase >= stride {
		return nil, fmt.Errorf("sync: phase %d stride %d: %w", phase, stride, modem.ErrConfiguration)
	}
	if phase >= len(samples) {
		return nil, fmt.Errorf("sync: phase %d beyond %d samples: %w", phase, len(samples), modem.ErrConfiguration)
	}

	out := make([]complex64, 0, (len(samples)-phase+stride-1)/stride)
	for i := phase; i < len(samples); i += stride {
		out = append(out, samples[i])
	}
	return out, nil
}

// Normalize scales samples so that max(|Re|, |Im|) is 1, the same domain
// a normalized constellation map occupies. An all-zero stream carries no
// signal and is rejected.
func Normalize(samples []complex64) ([]complex64, error) {
	wide := core.Widen(samples)
	peak := core.MaxAbsComponent(wide)
	if !(peak > 0) || math.IsInf(peak, 0) {
		return nil, fmt.Errorf("sync: normalize by %v: %w", peak, modem.ErrDetection)
	}

	re, im := core.Split(wide)
	scaledRe := make([]float64, len(samples))
	scaledIm := make([]float64, len(samples))
	vecmath.ScaleBlock(scaledRe, re, 1/peak)
	vecmath.ScaleBlock(scaledIm, im, 1/peak)
	return core.Narrow(core.Join(scaledRe, scaledIm)), nil
}

// Rotate multiplies samples by exp(i*steps*2*pi/m), the correction for
// the phase ambiguity of an m-fold symmetric constellation.
func Rotate(samples []complex64, steps, m int) ([]complex64, error) {
	if m < 1 {
		return nil, fmt.Errorf("sync: rotation over %d points: %w", m, modem.ErrConfiguration)
	}

	sin, cos := math.Sincos(2 * math.Pi * float64(steps%m) / float64(m))
	r := complex(cos, sin)

	out := make([]complex64, len(samples))
	for i, v := range samples {
		out[i] = complex64(complex128(v) * r)
	}
	return out, nil
}
