package constellation

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/modem"
)

// Map is an ordered set of constellation points indexed by symbol value.
type Map []complex128

// Clone returns an independent copy of m.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	copy(out, m)
	return out
}

// ringSpacing moves a corner one ring outwards per quadrant.
var ringSpacing = [4]complex128{2 + 2i, -2 + 2i, -2 - 2i, 2 - 2i}

// unitSquare is the first ring.
var unitSquare = [4]complex128{1 + 1i, -1 + 1i, -1 - 1i, 1 - 1i}

// goldenAngle is the per-step rotation of the sunflower spiral.
const goldenAngle = 137.5 * math.Pi / 180

// Square builds concentric square rings on the odd-integer lattice until the
// point count (4, 16, 36, ...) reaches at least m. The result is not pruned
// or normalized.
//
// Each ring steps every existing point one lattice spacing away from the
// origin along both axes of its quadrant and adds the four new corners.
// Points on an axis are never produced.
func Square(m int) (Map, error) {
	if m < 1 {
		return nil, fmt.Errorf("constellation: square of %d points: %w", m, modem.ErrConfiguration)
	}

	rings := int(math.Ceil(math.Sqrt(float64(m)) / 2))

	points := make(map[complex128]struct{}, 4*rings*rings)
	for _, p := range unitSquare {
		points[p] = struct{}{}
	}

	for ring := 1; ring < rings; ring++ {
		var stepOut []complex128
		for p := range points {
			re, im := real(p), imag(p)
			switch {
			case re > 0 && im > 0:
				stepOut = append(stepOut, p+2i, p+2)
			case re < 0 && im > 0:
				stepOut = append(stepOut, p+2i, p-2)
			case re < 0 && im < 0:
				stepOut = append(stepOut, p-2i, p-2)
			case re > 0 && im < 0:
				stepOut = append(stepOut, p-2i, p+2)
			}
		}

		scale := complex(float64(ring), 0)
		for q := range unitSquare {
			stepOut = append(stepOut, unitSquare[q]+ringSpacing[q]*scale)
		}

		for _, p := range stepOut {
			points[p] = struct{}{}
		}
	}

	out := make(Map, 0, len(points))
	for p := range points {
		out = append(out, p)
	}
	sortByRadius(out)
	return out, nil
}

// Sunflower builds an m-point phyllotaxis spiral. Starting from 0.2+0i,
// every step pushes the running point outwards by 1/(2*pi*|z|) and rotates
// it by the golden angle. The seed point itself is not part of the result.
func Sunflower(m int) (Map, error) {
	if m < 1 {
		return nil, fmt.Errorf("constellation: sunflower of %d points: %w", m, modem.ErrConfiguration)
	}

	rot := cmplx.Exp(complex(0, goldenAngle))
	z := complex(0.2, 0)

	out := make(Map, m)
	for i := range out {
		amp := cmplx.Abs(z)
		if amp == 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			return nil, fmt.Errorf("constellation: sunflower amplitude %v at step %d: %w", amp, i, modem.ErrConstellation)
		}
		z = (z + complex(1/(2*math.Pi*amp), 0)) * rot
		out[i] = z
	}

	return out, nil
}

// Prune discards the len(points)-m points of largest amplitude and returns
// the remaining m points in their original order. Amplitude ties are ranked
// by ascending index, so among equally distant points the later ones go
// first. A map that already holds m points is returned as a copy.
func Prune(points Map, m int) (Map, error) {
	if m < 1 {
		return nil, fmt.Errorf("constellation: prune to %d points: %w", m, modem.ErrConfiguration)
	}
	if len(points) < m {
		return nil, fmt.Errorf("constellation: prune %d points to %d: %w", len(points), m, modem.ErrConstellation)
	}
	if len(points) == m {
		return points.Clone(), nil
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return power(points[order[a]]) < power(points[order[b]])
	})

	keep := make([]bool, len(points))
	for _, idx := range order[:m] {
		keep[idx] = true
	}

	out := make(Map, 0, m)
	for i, p := range points {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out, nil
}

// Normalize divides every point by the largest |Re| or |Im| over the map,
// so the result spans [-1, 1] on at least one axis. Normalizing a
// normalized map returns identical values.
func Normalize(points Map) (Map, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("constellation: normalize empty map: %w", modem.ErrConstellation)
	}

	peak := core.MaxAbsComponent(points)
	if peak == 0 || math.IsInf(peak, 0) || math.IsNaN(peak) {
		return nil, fmt.Errorf("constellation: normalize by %v: %w", peak, modem.ErrConstellation)
	}

	out := make(Map, len(points))
	for i, p := range points {
		out[i] = complex(real(p)/peak, imag(p)/peak)
	}
	return out, nil
}

func power(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}

// sortByRadius orders points by amplitude, then by angle in (-pi, pi].
func sortByRadius(points Map) {
	sort.Slice(points, func(a, b int) bool {
		pa, pb := power(points[a]), power(points[b])
		if pa != pb {
			return pa < pb
		}
		return cmplx.Phase(points[a]) < cmplx.Phase(points[b])
	})
}
