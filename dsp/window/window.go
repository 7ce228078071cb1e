package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-modem/dsp/core"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris
)

// String returns the window name.
func (t Type) String() string {
	if m, ok := metadataByType[t]; ok {
		return m.Name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name            string
	ENBW            float64
	HighestSidelobe float64
	CoherentGain    float64
}

var metadataByType = map[Type]Metadata{
	TypeRectangular:    {Name: "Rectangular", ENBW: 1.0, HighestSidelobe: -13.3, CoherentGain: 1.0},
	TypeHann:           {Name: "Hann", ENBW: 1.5, HighestSidelobe: -31.5, CoherentGain: 0.5},
	TypeHamming:        {Name: "Hamming", ENBW: 1.36, HighestSidelobe: -42.7, CoherentGain: 0.54},
	TypeBlackman:       {Name: "Blackman", ENBW: 1.73, HighestSidelobe: -58.1, CoherentGain: 0.42},
	TypeBlackmanHarris: {Name: "Blackman-Harris", ENBW: 2.0, HighestSidelobe: -92.0, CoherentGain: 0.36},
}

// cosine-sum coefficients a0 - a1 cos + a2 cos2 - a3 cos3
var cosineTerms = map[Type][]float64{
	TypeRectangular:    {1},
	TypeHann:           {0.5, 0.5},
	TypeHamming:        {0.54, 0.46},
	TypeBlackman:       {0.42, 0.5, 0.08},
	TypeBlackmanHarris: {0.35875, 0.48829, 0.14128, 0.01168},
}

var (
	// ErrInvalidLength is returned for non-positive window sizes.
	ErrInvalidLength = errors.New("window: size must be > 0")
	// ErrUnknownType is returned for a Type outside the known set.
	ErrUnknownType = errors.New("window: unknown type")
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic (DFT-even) form instead of the
// symmetric one.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	terms, ok := cosineTerms[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out, nil
	}

	den := float64(length - 1)
	if cfg.periodic {
		den = float64(length)
	}

	for i := range out {
		x := 2 * math.Pi * float64(i) / den
		v := 0.0
		sign := 1.0
		for k, a := range terms {
			v += sign * a * math.Cos(float64(k)*x)
			sign = -sign
		}
		out[i] = v
	}

	return out, nil
}

// Apply multiplies buf in place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) error {
	if len(buf) == 0 {
		return nil
	}
	coeffs, err := Generate(t, len(buf), opts...)
	if err != nil {
		return err
	}
	vecmath.MulBlockInPlace(buf, coeffs)
	return nil
}

// ApplyComplex returns a copy of samples with each element scaled by the
// selected window. TypeRectangular returns a plain copy.
func ApplyComplex(t Type, samples []complex128, opts ...Option) ([]complex128, error) {
	out := make([]complex128, len(samples))
	if len(samples) == 0 {
		return out, nil
	}
	if t == TypeRectangular {
		copy(out, samples)
		return out, nil
	}

	coeffs, err := Generate(t, len(samples), opts...)
	if err != nil {
		return nil, err
	}

	re, im := core.Split(samples)
	vecmath.MulBlockInPlace(re, coeffs)
	vecmath.MulBlockInPlace(im, coeffs)
	return core.Join(re, im), nil
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	return metadataByType[t]
}
