package mod

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-modem/dsp/conv"
	"github.com/cwbudde/algo-modem/modem"
	"github.com/cwbudde/algo-modem/modem/constellation"
)

// Signal is a synthesized waveform together with the parameters that
// produced it.
type Signal struct {
	Samples          []complex64
	Params           Params
	Kind             Kind
	SamplesPerSymbol int
	// Tones lists the keyed frequency of each symbol value for frequency
	// kinds. Nil otherwise.
	Tones []float64
}

// Modulator turns one validated symbol stream into waveforms.
type Modulator struct {
	params  Params
	symbols []int
	m       int
	max     int
	sps     int
}

// New validates p and symbols. M is the number of distinct symbol values.
func New(p Params, symbols []int) (*Modulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("mod: empty message: %w", modem.ErrConfiguration)
	}

	distinct := make(map[int]struct{})
	maxSym := 0
	for i, s := range symbols {
		if s < 0 {
			return nil, fmt.Errorf("mod: symbol %d at %d is negative: %w", s, i, modem.ErrConfiguration)
		}
		distinct[s] = struct{}{}
		if s > maxSym {
			maxSym = s
		}
	}

	sps, err := p.SamplesPerSymbol(len(symbols))
	if err != nil {
		return nil, err
	}

	return &Modulator{
		params:  p,
		symbols: append([]int(nil), symbols...),
		m:       len(distinct),
		max:     maxSym,
		sps:     sps,
	}, nil
}

// M returns the alphabet size.
func (m *Modulator) M() int { return m.m }

// SamplesPerSymbol returns the per-symbol sample count.
func (m *Modulator) SamplesPerSymbol() int { return m.sps }

func (m *Modulator) signal(kind Kind, samples []complex64, tones []float64) Signal {
	return Signal{
		Samples:          samples,
		Params:           m.params,
		Kind:             kind,
		SamplesPerSymbol: m.sps,
		Tones:            tones,
	}
}

func (m *Modulator) perSymbol(f func(s int) float64) []float64 {
	out := make([]float64, len(m.symbols))
	for i, s := range m.symbols {
		out[i] = f(s)
	}
	return repeat(out, m.sps)
}

// ASK keys the amplitude: (s+1)/max(s+1).
func (m *Modulator) ASK() (Signal, error) {
	top := float64(m.max + 1)
	amp := m.perSymbol(func(s int) float64 {
		return m.params.Amplitude * float64(s+1) / top
	})
	z, err := Synthesize(m.params, Const(m.params.Carrier), Const(0), Seq(amp))
	if err != nil {
		return Signal{}, err
	}
	return m.signal(Amplitude, z, nil), nil
}

// tones returns the keyed frequency of every symbol value 0..max.
func (m *Modulator) tones(squish float64) []float64 {
	top := float64(m.max) + 1 + squish
	out := make([]float64, m.max+1)
	for v := range out {
		out[v] = (float64(v) + 1 + squish) / top * m.params.Carrier
	}
	return out
}

// FSK keys the frequency: (s+1)/max(s+1) of the carrier, phase 0. Phase
// jumps at symbol boundaries are left in place.
func (m *Modulator) FSK() (Signal, error) {
	tones := m.tones(0)
	freq := m.perSymbol(func(s int) float64 { return tones[s] })
	z, err := Synthesize(m.params, Seq(freq), Const(0), Const(m.params.Amplitude))
	if err != nil {
		return Signal{}, err
	}
	return m.signal(Frequency, z, tones), nil
}

// PSK keys the phase: pi + pi*s/max(s). A single-valued all-zero message
// sits at pi.
func (m *Modulator) PSK() (Signal, error) {
	top := float64(m.max)
	theta := m.perSymbol(func(s int) float64 {
		if top == 0 {
			return math.Pi
		}
		return math.Pi + math.Pi*float64(s)/top
	})
	z, err := Synthesize(m.params, Const(m.params.Carrier), Seq(theta), Const(m.params.Amplitude))
	if err != nil {
		return Signal{}, err
	}
	return m.signal(Phase, z, nil), nil
}

// QPSK places M equally spaced phases with a half-step bias: s*2*pi/M + pi/M.
func (m *Modulator) QPSK() (Signal, error) {
	mf := float64(m.m)
	theta := m.perSymbol(func(s int) float64 {
		return float64(s)*2*math.Pi/mf + math.Pi/mf
	})
	z, err := Synthesize(m.params, Const(m.params.Carrier), Seq(theta), Const(m.params.Amplitude))
	if err != nil {
		return Signal{}, err
	}
	return m.signal(QuadraturePhase, z, nil), nil
}

// QAM builds an M-point map of the given shape and keys on it.
func (m *Modulator) QAM(shape constellation.Shape) (Signal, error) {
	cmap, err := constellation.Build(shape, m.m)
	if err != nil {
		return Signal{}, err
	}
	return m.QAMMap(cmap)
}

// QAMMap keys on a prebuilt map: symbol s is sent as cmap[s], its
// magnitude scaled by the amplitude.
func (m *Modulator) QAMMap(cmap constellation.Map) (Signal, error) {
	if m.max >= len(cmap) {
		return Signal{}, fmt.Errorf("mod: symbol %d outside %d-point map: %w", m.max, len(cmap), modem.ErrConfiguration)
	}
	amp := m.perSymbol(func(s int) float64 { return cmplx.Abs(cmap[s]) * m.params.Amplitude })
	theta := m.perSymbol(func(s int) float64 { return cmplx.Phase(cmap[s]) })
	z, err := Synthesize(m.params, Const(m.params.Carrier), Seq(theta), Seq(amp))
	if err != nil {
		return Signal{}, err
	}
	return m.signal(QuadratureAmplitude, z, nil), nil
}

// CPFSK keys the instantaneous frequency and integrates it, so phase stays
// continuous across symbol boundaries. squish >= 0 pulls the tones
// together: freq = (s+1+squish)/max(s+1+squish) * carrier.
func (m *Modulator) CPFSK(squish float64) (Signal, error) {
	return m.cpfsk(squish, 1)
}

// CPFSKSmooth is CPFSK with an n-tap moving average over the instantaneous
// frequency before integration. The output is n-1 samples shorter.
func (m *Modulator) CPFSKSmooth(squish float64, n int) (Signal, error) {
	if n < 1 {
		return Signal{}, fmt.Errorf("mod: smoothing window %d: %w", n, modem.ErrConfiguration)
	}
	return m.cpfsk(squish, n)
}

func (m *Modulator) cpfsk(squish float64, smooth int) (Signal, error) {
	if squish < 0 || math.IsNaN(squish) {
		return Signal{}, fmt.Errorf("mod: squish %v: %w", squish, modem.ErrConfiguration)
	}

	tones := m.tones(squish)
	freq := m.perSymbol(func(s int) float64 { return tones[s] })

	if smooth > 1 {
		if smooth > len(freq) {
			return Signal{}, fmt.Errorf("mod: smoothing window %d exceeds %d samples: %w", smooth, len(freq), modem.ErrConfiguration)
		}
		var err error
		freq, err = conv.MovingAverage(freq, smooth, conv.ModeValid)
		if err != nil {
			return Signal{}, fmt.Errorf("mod: smoothing frequency: %w", err)
		}
	}

	out := make([]complex64, len(freq))
	step := 2 * math.Pi / m.params.SampleRate
	phase := 0.0
	for k, f := range freq {
		phase += step * f
		out[k] = complex64(cmplx.Rect(m.params.Amplitude, phase))
	}

	return m.signal(ContinuousPhaseFrequency, out, tones), nil
}

// Modulate dispatches on kind with default settings: a square map for QAM
// and no squish for CPFSK.
func (m *Modulator) Modulate(kind Kind) (Signal, error) {
	switch kind {
	case Amplitude:
		return m.ASK()
	case Frequency:
		return m.FSK()
	case Phase:
		return m.PSK()
	case QuadraturePhase:
		return m.QPSK()
	case QuadratureAmplitude:
		return m.QAM(constellation.ShapeSquare)
	case ContinuousPhaseFrequency:
		return m.CPFSK(0)
	default:
		return Signal{}, fmt.Errorf("mod: unknown kind %d: %w", int(kind), modem.ErrConfiguration)
	}
}
