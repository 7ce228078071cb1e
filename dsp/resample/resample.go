package resample

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFactor indicates an interpolation factor below one.
	ErrInvalidFactor = errors.New("resample: invalid interpolation factor")
	// ErrEmptyInput indicates an empty input stream.
	ErrEmptyInput = errors.New("resample: empty input")
)

// Quality controls default anti-imaging filter settings.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
)

// String returns the quality name.
func (q Quality) String() string {
	switch q {
	case QualityFast:
		return "fast"
	case QualityBalanced:
		return "balanced"
	case QualityBest:
		return "best"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// Profile exposes default filter parameters for each quality mode.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the default profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
}

// Option configures the interpolator.
type Option func(*config)

// WithQuality selects a predefined quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithTapsPerPhase overrides taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithCutoffScale overrides normalized cutoff scaling in range (0, 1].
// 1.0 places the cutoff at the input Nyquist frequency, which makes the
// prototype a Nyquist filter that passes input samples through unchanged.
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithKaiserBeta overrides the Kaiser window beta parameter.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta > 0 {
			cfg.kaiserBeta = beta
		}
	}
}

func defaultConfig() config {
	return config{quality: QualityBalanced}
}

func (c config) finalized() config {
	p := QualityProfile(c.quality)
	if c.tapsPerPhase <= 0 {
		c.tapsPerPhase = p.TapsPerPhase
	}

	if c.cutoffScale <= 0 || c.cutoffScale > 1 {
		c.cutoffScale = p.CutoffScale
	}

	if c.kaiserBeta <= 0 {
		c.kaiserBeta = p.KaiserBeta
	}

	return c
}

// Interpolator raises the sample rate of a complex stream by an integer
// factor. It holds no streaming state and is safe for concurrent use.
type Interpolator struct {
	up      int
	delay   int
	quality Quality

	taps   []float64
	phases [][]float64
}

// NewInterpolator designs an interpolator for factor up.
func NewInterpolator(up int, opts ...Option) (*Interpolator, error) {
	if up <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, up)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg = cfg.finalized()

	taps, delay, err := designPrototype(up, cfg)
	if err != nil {
		return nil, err
	}

	return &Interpolator{
		up:      up,
		delay:   delay,
		quality: cfg.quality,
		taps:    taps,
		phases:  splitPhases(taps, up),
	}, nil
}

// Interpolate upsamples input by up as a one-shot helper.
func Interpolate(input []complex128, up int, opts ...Option) ([]complex128, error) {
	ip, err := NewInterpolator(up, opts...)
	if err != nil {
		return nil, err
	}

	return ip.Process(input)
}

// Process returns len(input)*up samples. Output n*up corresponds to input n;
// the stream is treated as zero outside its bounds.
func (ip *Interpolator) Process(input []complex128) ([]complex128, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(input)
	out := make([]complex128, n*ip.up)

	for m := range out {
		pos := m + ip.delay
		branch := ip.phases[pos%ip.up]
		base := pos / ip.up

		var re, im float64
		for i, c := range branch {
			q := base - i
			if q < 0 {
				break
			}
			if q >= n {
				continue
			}
			re += c * real(input[q])
			im += c * imag(input[q])
		}
		out[m] = complex(re, im)
	}

	return out, nil
}

// Factor returns the interpolation factor.
func (ip *Interpolator) Factor() int {
	return ip.up
}

// Delay returns the prototype group delay in output samples. Process
// already compensates for it.
func (ip *Interpolator) Delay() int {
	return ip.delay
}

// Quality returns the configured quality mode.
func (ip *Interpolator) Quality() Quality {
	return ip.quality
}

// TapsPerPhase returns the longest polyphase branch length.
func (ip *Interpolator) TapsPerPhase() int {
	longest := 0
	for _, p := range ip.phases {
		longest = max(longest, len(p))
	}
	return longest
}

// Prototype returns a copy of the underlying prototype FIR taps.
func (ip *Interpolator) Prototype() []float64 {
	out := make([]float64, len(ip.taps))
	copy(out, ip.taps)

	return out
}
