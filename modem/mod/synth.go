package mod

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modem/modem"
)

// Value is a Synthesize argument: a constant or one value per sample.
type Value struct {
	scalar float64
	seq    []float64
	isSeq  bool
}

// Const returns a Value that is v at every sample.
func Const(v float64) Value {
	return Value{scalar: v}
}

// Seq returns a per-sample Value. The slice is read, not retained.
func Seq(vs []float64) Value {
	return Value{seq: vs, isSeq: true}
}

func (v Value) at(k int) float64 {
	if v.isSeq {
		return v.seq[k]
	}
	return v.scalar
}

// Synthesize evaluates amp*exp(i*(2*pi*freq*t + theta)) on t = k/fs for
// k < p.NumSamples(). When any argument is a sequence the time axis is cut
// to the shortest sequence, so sequence arguments define the output length.
// p.Amplitude is not applied; amp carries the level.
func Synthesize(p Params, freq, theta, amp Value) ([]complex64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.NumSamples()
	for _, v := range [...]Value{freq, theta, amp} {
		if v.isSeq && len(v.seq) < n {
			n = len(v.seq)
		}
	}
	if n < 1 {
		return nil, fmt.Errorf("mod: empty time axis: %w", modem.ErrConfiguration)
	}

	out := make([]complex64, n)
	for k := range out {
		t := float64(k) / p.SampleRate
		angle := 2*math.Pi*freq.at(k)*t + theta.at(k)
		a := amp.at(k)
		out[k] = complex64(complex(a*math.Cos(angle), a*math.Sin(angle)))
	}
	return out, nil
}

// repeat expands one value per symbol into sps values per symbol.
func repeat(perSymbol []float64, sps int) []float64 {
	out := make([]float64, 0, len(perSymbol)*sps)
	for _, v := range perSymbol {
		for j := 0; j < sps; j++ {
			out = append(out, v)
		}
	}
	return out
}
