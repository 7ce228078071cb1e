package channel

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modem/modem"
)

func ones(n int) []complex64 {
	out := make([]complex64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func TestAddNoisePowerAndSeed(t *testing.T) {
	in := make([]complex64, 20000)
	a, err := AddNoise(in, 0.01, 3)
	require.NoError(t, err)
	b, err := AddNoise(in, 0.01, 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	p := 0.0
	for _, v := range a {
		p += real(complex128(v))*real(complex128(v)) + imag(complex128(v))*imag(complex128(v))
	}
	assert.InDelta(t, 0.01, p/float64(len(a)), 0.001)

	_, err = AddNoise(in, -1, 3)
	assert.True(t, errors.Is(err, modem.ErrConfiguration), "err = %v", err)
}

func TestRotate(t *testing.T) {
	out := Rotate([]complex64{1, 1i}, 90)
	assert.InDelta(t, 0, cmplx.Abs(complex128(out[0])-1i), 1e-6)
	assert.InDelta(t, 0, cmplx.Abs(complex128(out[1])+1), 1e-6)
}

func TestShiftIsATone(t *testing.T) {
	out, err := Shift(ones(8), 8000, 2000)
	require.NoError(t, err)
	want := []complex128{1, 1i, -1, -1i, 1, 1i, -1, -1i}
	for i := range want {
		assert.InDelta(t, 0, cmplx.Abs(complex128(out[i])-want[i]), 1e-6, "i=%d", i)
	}

	_, err = Shift(ones(2), 0, 1)
	assert.True(t, errors.Is(err, modem.ErrConfiguration), "err = %v", err)
}

func TestPadWithNoise(t *testing.T) {
	out, err := PadWithNoise(ones(10), 5, 1e-4, 1)
	require.NoError(t, err)
	require.Len(t, out, 20)
	for i := 5; i < 15; i++ {
		assert.Equal(t, complex64(1), out[i])
	}
	for _, i := range []int{0, 4, 15, 19} {
		assert.Less(t, cmplx.Abs(complex128(out[i])), 0.1)
		assert.NotEqual(t, complex64(0), out[i])
	}
	assert.False(t, math.IsNaN(float64(real(out[0]))))

	_, err = PadWithNoise(ones(1), -1, 0, 1)
	assert.True(t, errors.Is(err, modem.ErrConfiguration), "err = %v", err)
}
