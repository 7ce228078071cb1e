package spectrum

import (
	"errors"
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-modem/dsp/core"
)

var (
	// ErrEmptyInput indicates an empty input block.
	ErrEmptyInput = errors.New("spectrum: empty input")
	// ErrInvalidSize indicates an FFT size that is not a power of two or is
	// shorter than the input.
	ErrInvalidSize = errors.New("spectrum: invalid FFT size")
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	buf.data = core.EnsureLen(buf.data, 2*n)
	return buf.data[:n], buf.data[n:], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Transform zero-pads in to size samples and returns its forward FFT.
// size must be a power of two and at least len(in).
func Transform(in []complex128, size int) ([]complex128, error) {
	if len(in) == 0 {
		return nil, ErrEmptyInput
	}
	if size < len(in) || size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d for %d samples", ErrInvalidSize, size, len(in))
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, size)
	copy(padded, in)

	out := make([]complex128, size)
	if err := plan.Forward(out, padded); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	return out, nil
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	core.SplitTo(re, im, in)

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// PeakBin returns the index and value of the largest element. The first
// occurrence wins on ties; an empty slice yields (-1, 0).
func PeakBin(mag []float64) (int, float64) {
	if len(mag) == 0 {
		return -1, 0
	}

	idx := 0
	peak := mag[0]
	for i := 1; i < len(mag); i++ {
		if mag[i] > peak {
			peak = mag[i]
			idx = i
		}
	}
	return idx, peak
}

// BinFrequency maps FFT bin k of an n-point transform at sampleRate to a
// signed frequency in Hz. Bins at or above n/2 map to negative frequencies,
// so the Nyquist bin reports -sampleRate/2.
func BinFrequency(k, n int, sampleRate float64) float64 {
	if n <= 0 {
		return 0
	}
	if k >= n/2 {
		k -= n
	}
	return float64(k) * sampleRate / float64(n)
}

// BinWidth returns the frequency spacing of an n-point transform.
func BinWidth(n int, sampleRate float64) float64 {
	if n <= 0 {
		return 0
	}
	return sampleRate / float64(n)
}
