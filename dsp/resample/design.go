package resample

import (
	"errors"
	"fmt"
	"math"
)

// designPrototype builds an odd-length Kaiser-windowed sinc lowpass with
// cutoff at the input Nyquist frequency (scaled), gain up, and returns the
// taps together with their centre index.
func designPrototype(up int, cfg config) ([]float64, int, error) {
	if cfg.tapsPerPhase <= 0 {
		return nil, 0, errors.New("resample: taps per phase must be > 0")
	}

	fc := (0.5 / float64(up)) * cfg.cutoffScale
	if fc <= 0 || fc > 0.5 {
		return nil, 0, fmt.Errorf("resample: invalid cutoff %.6f", fc)
	}

	half := cfg.tapsPerPhase * up / 2
	nTaps := 2*half + 1
	taps := make([]float64, nTaps)

	for n := range nTaps {
		t := float64(n - half)
		taps[n] = 2 * fc * sinc(2*fc*t) * kaiserWindow(n, nTaps, cfg.kaiserBeta)
	}

	var sum float64
	for _, v := range taps {
		sum += v
	}

	if sum == 0 {
		return nil, 0, errors.New("resample: designed zero-sum filter")
	}

	// Each of the up branches sees one input sample per output, so a total
	// gain of up restores unity DC gain after zero stuffing.
	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	return taps, half, nil
}

// splitPhases returns branch r = taps[r], taps[r+up], taps[r+2*up], ...
func splitPhases(taps []float64, up int) [][]float64 {
	phases := make([][]float64, up)
	for r := range up {
		branch := make([]float64, 0, (len(taps)-r+up-1)/up)
		for i := r; i < len(taps); i += up {
			branch = append(branch, taps[i])
		}
		phases[r] = branch
	}
	return phases
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}

func kaiserWindow(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}

	t := 2*float64(i)/float64(n-1) - 1
	a := math.Sqrt(math.Max(0, 1-t*t))

	return i0(beta*a) / i0(beta)
}

// i0 is the zeroth-order modified Bessel function of the first kind.
func i0(x float64) float64 {
	sum := 1.0
	term := 1.0

	x2 := (x * x) / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)

		sum += term
		if term < 1e-16*sum {
			break
		}
	}

	return sum
}
