package mod

import (
	"math"
)

// EffectiveCarrier returns the frequency Baseband removes: the carrier for
// phase and amplitude kinds, the mean keyed tone for frequency kinds.
func (s Signal) EffectiveCarrier() float64 {
	if !s.Kind.FrequencyKeyed() || len(s.Tones) == 0 {
		return s.Params.Carrier
	}
	sum := 0.0
	for _, f := range s.Tones {
		sum += f
	}
	return sum / float64(len(s.Tones))
}

// Baseband returns a copy of s mixed down by EffectiveCarrier. The result
// has Carrier 0 and its tones shifted by the same amount, so calling it
// again shifts nothing further.
func (s Signal) Baseband() Signal {
	fEff := s.EffectiveCarrier()

	out := s
	out.Samples = make([]complex64, len(s.Samples))
	step := -2 * math.Pi * fEff / s.Params.SampleRate
	for k, v := range s.Samples {
		sin, cos := math.Sincos(step * float64(k))
		out.Samples[k] = v * complex64(complex(cos, sin))
	}

	out.Params.Carrier = 0
	if s.Tones != nil {
		out.Tones = make([]float64, len(s.Tones))
		for i, f := range s.Tones {
			out.Tones[i] = f - fEff
		}
	}
	return out
}
