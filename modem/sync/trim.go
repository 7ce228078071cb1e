package sync

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-modem/dsp/conv"
	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/modem"
	timestats "github.com/cwbudde/algo-modem/stats/time"
)

// Envelope returns the window-length moving average of |x| in valid mode:
// element i averages |x[i]| .. |x[i+window-1]|.
func Envelope(samples []complex64, window int) ([]float64, error) {
	if window < 1 || window > len(samples) {
		return nil, fmt.Errorf("sync: envelope window %d for %d samples: %w", window, len(samples), modem.ErrConfiguration)
	}

	re, im := core.Split(core.Widen(samples))
	mag := make([]float64, len(samples))
	vecmath.Magnitude(mag, re, im)

	return conv.MovingAverage(mag, window, conv.ModeValid)
}

// Trim cuts the burst out of a capture. Envelope indices whose value
// exceeds stdCut times the envelope's population standard deviation mark
// the burst; the result spans [first-padding, last+padding] inclusive,
// clamped to the capture. start is the index of the first kept sample in
// the input.
func Trim(samples []complex64, window int, stdCut float64, padding int) (out []complex64, start int, err error) {
	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("sync: trim of empty capture: %w", modem.ErrDetection)
	}
	if stdCut < 0 || math.IsNaN(stdCut) {
		return nil, 0, fmt.Errorf("sync: std cut %v: %w", stdCut, modem.ErrConfiguration)
	}
	if padding < 0 {
		return nil, 0, fmt.Errorf("sync: padding %d: %w", padding, modem.ErrConfiguration)
	}

	env, err := Envelope(samples, window)
	if err != nil {
		return nil, 0, err
	}

	threshold := stdCut * timestats.StdDev(env)

	first, last := -1, -1
	for i, v := range env {
		if v > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil, 0, fmt.Errorf("sync: nothing above %.3g in %d samples: %w", threshold, len(samples), modem.ErrDetection)
	}

	lo := max(first-padding, 0)
	hi := min(last+padding, len(samples)-1)

	out = make([]complex64, hi-lo+1)
	copy(out, samples[lo:hi+1])
	return out, lo, nil
}
