package sync

import (
	"github.com/cwbudde/algo-modem/dsp/resample"
	"github.com/cwbudde/algo-modem/dsp/window"
)

const (
	defaultTrimWindow = 10
	defaultStdCut     = 1.5
	defaultOrder      = 4
	defaultOversample = 10
)

// Option configures a Pipeline or EstimateFrequencyOffset. Estimator-only
// calls ignore the trim and timing settings.
type Option func(*config)

type config struct {
	trimWindow int
	stdCut     float64
	padding    int

	order          int
	padFactor      int
	spectralWindow window.Type
	maxOffset      float64

	oversample int
	quality    resample.Quality
}

func defaultConfig() config {
	return config{
		trimWindow:     defaultTrimWindow,
		stdCut:         defaultStdCut,
		order:          defaultOrder,
		padFactor:      1,
		spectralWindow: window.TypeRectangular,
		oversample:     defaultOversample,
		quality:        resample.QualityBalanced,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithWindow sets the moving-average length of the trim envelope.
func WithWindow(n int) Option {
	return func(c *config) {
		c.trimWindow = n
	}
}

// WithStdCut sets the trim threshold in standard deviations of the
// envelope.
func WithStdCut(v float64) Option {
	return func(c *config) {
		c.stdCut = v
	}
}

// WithPadding keeps n extra samples on each side of the detected burst.
func WithPadding(n int) Option {
	return func(c *config) {
		c.padding = n
	}
}

// WithOrder sets the power the samples are raised to before the offset
// FFT. Use the rotational symmetry of the constellation: 4 for square QAM
// and QPSK, 2 for BPSK.
func WithOrder(k int) Option {
	return func(c *config) {
		c.order = k
	}
}

// WithPadFactor zero-pads the offset FFT to factor times the next power of
// two above the burst length. factor must be a power of two.
func WithPadFactor(factor int) Option {
	return func(c *config) {
		c.padFactor = factor
	}
}

// WithSpectralWindow applies an analysis window before the offset FFT.
func WithSpectralWindow(t window.Type) Option {
	return func(c *config) {
		c.spectralWindow = t
	}
}

// WithMaxOffset declares the largest carrier offset, in Hz, the caller
// expects. Estimates are rejected when order*maxOffset reaches Nyquist or
// when the estimate itself exceeds the bound. Zero disables the bound.
func WithMaxOffset(hz float64) Option {
	return func(c *config) {
		c.maxOffset = hz
	}
}

// WithOversample sets the timing-search interpolation factor U.
func WithOversample(up int) Option {
	return func(c *config) {
		c.oversample = up
	}
}

// WithQuality selects the interpolation filter profile.
func WithQuality(q resample.Quality) Option {
	return func(c *config) {
		c.quality = q
	}
}
