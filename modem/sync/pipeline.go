package sync

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modem/dsp/resample"
	"github.com/cwbudde/algo-modem/modem"
)

// Result is the output of a pipeline run.
type Result struct {
	// Samples holds one normalized sample per recovered symbol.
	Samples []complex64
	// SampleRate of Samples, the symbol rate.
	SampleRate float64
	// Start and Stop bound the trimmed burst in the capture, Stop exclusive.
	Start, Stop int
	// FrequencyOffset is the carrier offset that was removed, in Hz.
	FrequencyOffset float64
	Estimate        Estimate
	// TimingPhase is the chosen phase on the oversampled grid.
	TimingPhase int
	// Stride is oversample*samplesPerSymbol.
	Stride int
	// PhaseMeans holds the mean magnitude of every candidate phase.
	PhaseMeans []float64
	// Duration of the recovered symbol stream in seconds.
	Duration float64
}

// Pipeline runs the fixed synchronization chain for one capture layout.
// It is safe for concurrent use.
type Pipeline struct {
	cfg        config
	sampleRate float64
	sps        int
	interp     *resample.Interpolator
}

// New validates the settings and designs the interpolation filter once.
func New(sampleRate float64, samplesPerSymbol int, opts ...Option) (*Pipeline, error) {
	cfg := applyOptions(opts)

	switch {
	case !(sampleRate > 0) || math.IsInf(sampleRate, 0):
		return nil, fmt.Errorf("sync: sample rate %v: %w", sampleRate, modem.ErrConfiguration)
	case samplesPerSymbol < 1:
		return nil, fmt.Errorf("sync: samples per symbol %d: %w", samplesPerSymbol, modem.ErrConfiguration)
	case cfg.trimWindow < 1:
		return nil, fmt.Errorf("sync: trim window %d: %w", cfg.trimWindow, modem.ErrConfiguration)
	case cfg.stdCut < 0 || math.IsNaN(cfg.stdCut):
		return nil, fmt.Errorf("sync: std cut %v: %w", cfg.stdCut, modem.ErrConfiguration)
	case cfg.padding < 0:
		return nil, fmt.Errorf("sync: padding %d: %w", cfg.padding, modem.ErrConfiguration)
	case cfg.order < 1:
		return nil, fmt.Errorf("sync: order %d: %w", cfg.order, modem.ErrConfiguration)
	case cfg.oversample < 1:
		return nil, fmt.Errorf("sync: oversampling factor %d: %w", cfg.oversample, modem.ErrConfiguration)
	case cfg.maxOffset > 0 && float64(cfg.order)*cfg.maxOffset >= sampleRate/2:
		return nil, fmt.Errorf("sync: order %d times max offset %v Hz reaches Nyquist: %w",
			cfg.order, cfg.maxOffset, modem.ErrEstimation)
	}

	p := &Pipeline{cfg: cfg, sampleRate: sampleRate, sps: samplesPerSymbol}
	if cfg.oversample > 1 {
		ip, err := resample.NewInterpolator(cfg.oversample, resample.WithQuality(cfg.quality))
		if err != nil {
			return nil, fmt.Errorf("sync: interpolator: %w", err)
		}
		p.interp = ip
	}
	return p, nil
}

// Stride returns the decimation stride on the oversampled grid.
func (p *Pipeline) Stride() int {
	return p.cfg.oversample * p.sps
}

// Run pushes a capture through every stage. The first failing stage ends
// the run.
func (p *Pipeline) Run(samples []complex64) (Result, error) {
	burst, start, err := Trim(samples, p.cfg.trimWindow, p.cfg.stdCut, p.cfg.padding)
	if err != nil {
		return Result{}, err
	}

	est, err := EstimateFrequencyOffset(burst, p.sampleRate, p.cfg.order,
		WithPadFactor(p.cfg.padFactor),
		WithSpectralWindow(p.cfg.spectralWindow),
		WithMaxOffset(p.cfg.maxOffset),
	)
	if err != nil {
		return Result{}, err
	}

	centred, err := Derotate(burst, p.sampleRate, est.Offset, start)
	if err != nil {
		return Result{}, err
	}

	fine := centred
	if p.interp != nil {
		fine, err = oversampleWith(p.interp, centred)
		if err != nil {
			return Result{}, err
		}
	}

	stride := p.Stride()
	phase, means, err := SearchTimingPhase(fine, stride)
	if err != nil {
		return Result{}, err
	}

	symbols, err := Decimate(fine, phase, stride)
	if err != nil {
		return Result{}, err
	}

	symbols, err = Normalize(symbols)
	if err != nil {
		return Result{}, err
	}

	symbolRate := p.sampleRate / float64(p.sps)
	return Result{
		Samples:         symbols,
		SampleRate:      symbolRate,
		Start:           start,
		Stop:            start + len(burst),
		FrequencyOffset: est.Offset,
		Estimate:        est,
		TimingPhase:     phase,
		Stride:          stride,
		PhaseMeans:      means,
		Duration:        float64(len(symbols)) / symbolRate,
	}, nil
}
