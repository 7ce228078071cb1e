package window

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-modem/internal/testutil"
)

func TestGenerateSymmetricEndpoints(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeBlackman, TypeBlackmanHarris} {
		w, err := Generate(typ, 33)
		if err != nil {
			t.Fatalf("%v: Generate() error = %v", typ, err)
		}
		if math.Abs(w[0]-w[32]) > 1e-12 {
			t.Fatalf("%v: not symmetric: %v vs %v", typ, w[0], w[32])
		}
		if math.Abs(w[16]-1) > 1e-12 {
			t.Fatalf("%v: centre = %v, want 1", typ, w[16])
		}
	}
}

func TestGeneratePeriodicHann(t *testing.T) {
	w, err := Generate(TypeHann, 4, WithPeriodic())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, w, []float64{0, 0.5, 1, 0.5}, 1e-12)
}

func TestGenerateValidation(t *testing.T) {
	if _, err := Generate(TypeHann, 0); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("err = %v, want ErrInvalidLength", err)
	}
	if _, err := Generate(Type(99), 8); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}
}

func TestApplyComplexScalesBothParts(t *testing.T) {
	in := []complex128{1 + 2i, 1 + 2i, 1 + 2i, 1 + 2i}
	out, err := ApplyComplex(TypeHann, in, WithPeriodic())
	if err != nil {
		t.Fatalf("ApplyComplex() error = %v", err)
	}
	want := []float64{0, 0.5, 1, 0.5}
	for i := range out {
		if math.Abs(real(out[i])-want[i]) > 1e-12 || math.Abs(imag(out[i])-2*want[i]) > 1e-12 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], complex(want[i], 2*want[i]))
		}
	}
	if in[0] != 1+2i {
		t.Fatal("input mutated")
	}
}

func TestMetadataENBWMatchesCoefficients(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeBlackmanHarris} {
		w, err := Generate(typ, 4096, WithPeriodic())
		if err != nil {
			t.Fatalf("Generate(%v) error = %v", typ, err)
		}
		sum, sumSquares := 0.0, 0.0
		for _, c := range w {
			sum += c
			sumSquares += c * c
		}
		enbw := float64(len(w)) * sumSquares / (sum * sum)
		if math.Abs(enbw-Info(typ).ENBW) > 0.01 {
			t.Fatalf("%v ENBW = %v, want %v", typ, enbw, Info(typ).ENBW)
		}
	}
}
