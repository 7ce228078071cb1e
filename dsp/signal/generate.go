package signal

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/algo-modem/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
// Every call reseeds from the configured seed, so identical calls return
// identical output.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed replaces the seed used by subsequent calls.
func (g *Generator) SetSeed(seed int64) {
	g.cfg.Seed = seed
}

func (g *Generator) rng() *rand.Rand {
	return rand.New(rand.NewSource(g.cfg.Seed))
}

// Tone generates amplitude*exp(i*2*pi*freqHz*n/fs).
func (g *Generator) Tone(freqHz, amplitude float64, samples int) ([]complex128, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("tone samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("tone sample rate must be > 0: %f", g.cfg.SampleRate)
	}

	out := make([]complex128, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = complex(amplitude, 0) * cmplx.Exp(complex(0, step*float64(i)))
	}
	return out, nil
}

// AWGN generates circular complex Gaussian noise with mean power power:
// (N(0,1) + i*N(0,1)) / sqrt(2) * sqrt(power).
func (g *Generator) AWGN(power float64, samples int) ([]complex128, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if power < 0 || math.IsNaN(power) {
		return nil, fmt.Errorf("noise power must be >= 0: %f", power)
	}

	out := make([]complex128, samples)
	if power == 0 {
		return out, nil
	}

	rng := g.rng()
	scale := math.Sqrt(power / 2)
	for i := range out {
		out[i] = complex(rng.NormFloat64()*scale, rng.NormFloat64()*scale)
	}
	return out, nil
}

// Message returns n random symbols in [0, m). Every symbol value appears at
// least once, so a modulator derives the full alphabet size from it.
func (g *Generator) Message(n, m int) ([]int, error) {
	if m < 1 {
		return nil, fmt.Errorf("message alphabet must be >= 1: %d", m)
	}
	if n < m {
		return nil, fmt.Errorf("message length %d shorter than alphabet %d", n, m)
	}

	rng := g.rng()
	out := make([]int, n)
	for i := range out {
		if i < m {
			out[i] = i
			continue
		}
		out[i] = rng.Intn(m)
	}
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out, nil
}
