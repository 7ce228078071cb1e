package constellation

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modem/modem"
)

func TestSquareRingSizes(t *testing.T) {
	testCases := []struct {
		m    int
		want int
	}{
		{1, 4}, {4, 4}, {5, 16}, {16, 16}, {17, 36}, {36, 36}, {37, 64}, {64, 64},
	}
	for _, tC := range testCases {
		pts, err := Square(tC.m)
		require.NoError(t, err)
		assert.Len(t, pts, tC.want, "M=%d", tC.m)

		for _, p := range pts {
			re, im := real(p), imag(p)
			assert.NotZero(t, re, "axis point %v", p)
			assert.NotZero(t, im, "axis point %v", p)
			assert.Equal(t, 1.0, math.Abs(math.Mod(re, 2)), "off-lattice point %v", p)
			assert.Equal(t, 1.0, math.Abs(math.Mod(im, 2)), "off-lattice point %v", p)
		}
	}
}

func TestSquareDeterministicOrder(t *testing.T) {
	a, err := Square(36)
	require.NoError(t, err)
	b, err := Square(36)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, Map{-1 - 1i, 1 - 1i, 1 + 1i, -1 + 1i}, a[:4])
}

func TestPrunedSquareHasExactlyM(t *testing.T) {
	for m := 2; m <= 64; m++ {
		pts, err := Square(m)
		require.NoError(t, err)
		pruned, err := Prune(pts, m)
		require.NoError(t, err)
		require.Len(t, pruned, m, "M=%d", m)

		seen := make(map[complex128]bool, m)
		for _, p := range pruned {
			require.False(t, seen[p], "M=%d duplicate point %v", m, p)
			seen[p] = true
		}
	}
}

func TestPruneKeepsInnermost(t *testing.T) {
	pts, err := Square(16)
	require.NoError(t, err)
	pruned, err := Prune(pts, 4)
	require.NoError(t, err)
	for _, p := range pruned {
		assert.InDelta(t, math.Sqrt2, cmplx.Abs(p), 1e-12)
	}
}

func TestPruneTieBreakKeepsLowerIndex(t *testing.T) {
	pruned, err := Prune(Map{1, -1, 2i, 1i}, 2)
	require.NoError(t, err)
	assert.Equal(t, Map{1, -1}, pruned)
}

func TestPruneNoOpCopies(t *testing.T) {
	in := Map{1, 2}
	out, err := Prune(in, 2)
	require.NoError(t, err)
	out[0] = 9
	assert.Equal(t, complex128(1), in[0])
}

func TestPruneErrors(t *testing.T) {
	_, err := Prune(Map{1}, 2)
	assert.True(t, errors.Is(err, modem.ErrConstellation), "err = %v", err)
	_, err = Prune(Map{1}, 0)
	assert.True(t, errors.Is(err, modem.ErrConfiguration), "err = %v", err)
}

func TestNormalizeIdempotent(t *testing.T) {
	sq, err := Square(36)
	require.NoError(t, err)
	sf, err := Sunflower(20)
	require.NoError(t, err)

	for _, pts := range []Map{sq, sf, {0.3 - 2i, 5 + 0.1i}} {
		once, err := Normalize(pts)
		require.NoError(t, err)
		twice, err := Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)

		peak := 0.0
		for _, p := range once {
			peak = math.Max(peak, math.Max(math.Abs(real(p)), math.Abs(imag(p))))
		}
		assert.Equal(t, 1.0, peak)
	}
}

func TestNormalizeRejectsDegenerate(t *testing.T) {
	_, err := Normalize(Map{0, 0})
	assert.True(t, errors.Is(err, modem.ErrConstellation), "err = %v", err)
	_, err = Normalize(nil)
	assert.True(t, errors.Is(err, modem.ErrConstellation), "err = %v", err)
	_, err = Normalize(Map{1 + 1i, complex(math.NaN(), 0)})
	assert.True(t, errors.Is(err, modem.ErrConstellation), "err = %v", err)
}

func TestSunflower(t *testing.T) {
	pts, err := Sunflower(32)
	require.NoError(t, err)
	require.Len(t, pts, 32)

	rot := cmplx.Exp(complex(0, 137.5*math.Pi/180))
	want := complex(0.2+1/(2*math.Pi*0.2), 0) * rot
	assert.InDelta(t, 0, cmplx.Abs(pts[0]-want), 1e-12)

	seen := make(map[complex128]bool)
	for _, p := range pts {
		assert.False(t, cmplx.IsNaN(p) || cmplx.IsInf(p))
		assert.False(t, seen[p], "duplicate point %v", p)
		seen[p] = true
	}
	assert.Greater(t, cmplx.Abs(pts[31]), cmplx.Abs(pts[0]))
}

func TestBuild(t *testing.T) {
	testCases := []struct {
		desc  string
		shape Shape
		m     int
	}{
		{"square-4", ShapeSquare, 4},
		{"square-10", ShapeSquare, 10},
		{"square-64", ShapeSquare, 64},
		{"sunflower-8", ShapeSunflower, 8},
		{"custom", Custom(Map{2, 2i, -2, -2i, 4}), 4},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			m, err := Build(tC.shape, tC.m)
			require.NoError(t, err)
			assert.Len(t, m, tC.m)
			for _, p := range m {
				assert.LessOrEqual(t, math.Abs(real(p)), 1.0)
				assert.LessOrEqual(t, math.Abs(imag(p)), 1.0)
			}
		})
	}
}

func TestBuildCustomKeepsOrder(t *testing.T) {
	m, err := Build(Custom(Map{1 + 1i, -1 + 1i, -1 - 1i, 1 - 1i}), 4)
	require.NoError(t, err)
	assert.Equal(t, Map{1 + 1i, -1 + 1i, -1 - 1i, 1 - 1i}, m)
}

func TestBuildErrors(t *testing.T) {
	testCases := []struct {
		desc  string
		shape Shape
		m     int
		want  error
	}{
		{"zero M", ShapeSquare, 0, modem.ErrConfiguration},
		{"nil shape", nil, 4, modem.ErrConstellation},
		{"short custom", Custom(Map{1, -1}), 4, modem.ErrConstellation},
		{"duplicate custom", Custom(Map{1, 1, -1, 1i}), 4, modem.ErrConstellation},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := Build(tC.shape, tC.m)
			assert.True(t, errors.Is(err, tC.want), "err = %v, want %v", err, tC.want)
		})
	}
}

func TestParseShape(t *testing.T) {
	s, err := ParseShape("sunflower")
	require.NoError(t, err)
	assert.Equal(t, "sunflower", s.String())

	_, err = ParseShape("hexagon")
	assert.True(t, errors.Is(err, modem.ErrConstellation), "err = %v", err)
}
