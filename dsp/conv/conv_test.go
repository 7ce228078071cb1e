package conv

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-modem/internal/testutil"
)

func TestDirect(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want []float64
	}{
		{"impulse", []float64{1}, []float64{1, 2, 3}, []float64{1, 2, 3}},
		{"short kernel", []float64{1, 2, 3}, []float64{1, 1}, []float64{1, 3, 5, 3}},
		{"simd kernel", []float64{1, 0, -1}, []float64{1, 2, 3, 4}, []float64{1, 2, 2, 2, -3, -4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Direct(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Direct() error = %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-12)
		})
	}
}

func TestDirectEmpty(t *testing.T) {
	if _, err := Direct(nil, []float64{1}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
	if _, err := Direct([]float64{1}, nil); !errors.Is(err, ErrEmptyKernel) {
		t.Fatalf("err = %v, want ErrEmptyKernel", err)
	}
}

func TestConvolveModeLengths(t *testing.T) {
	a := make([]float64, 20)
	b := make([]float64, 5)
	tests := []struct {
		mode Mode
		want int
	}{
		{ModeFull, 24},
		{ModeSame, 20},
		{ModeValid, 16},
	}
	for _, tt := range tests {
		got, err := ConvolveMode(a, b, tt.mode)
		if err != nil {
			t.Fatalf("ConvolveMode(%d) error = %v", tt.mode, err)
		}
		if len(got) != tt.want {
			t.Fatalf("mode %d: len = %d, want %d", tt.mode, len(got), tt.want)
		}
	}
}

func TestMovingAverageValid(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	got, err := MovingAverage(x, 3, ModeValid)
	if err != nil {
		t.Fatalf("MovingAverage() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{2, 3, 4, 5}, 1e-12)
}

func TestMovingAverageRejectsBadWindow(t *testing.T) {
	if _, err := MovingAverage([]float64{1, 2}, 0, ModeValid); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("err = %v, want ErrInvalidWindow", err)
	}
	if _, err := MovingAverage([]float64{1, 2}, 3, ModeValid); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("err = %v, want ErrInvalidWindow", err)
	}
	if _, err := MovingAverage(nil, 3, ModeFull); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}
