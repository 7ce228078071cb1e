package signal

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-modem/dsp/core"
)

func TestToneUnitCircle(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))
	x, err := g.Tone(250, 2, 8)
	if err != nil {
		t.Fatalf("Tone() error = %v", err)
	}
	for i, v := range x {
		if math.Abs(cmplx.Abs(v)-2) > 1e-12 {
			t.Fatalf("|x[%d]| = %v, want 2", i, cmplx.Abs(v))
		}
	}
	if cmplx.Abs(x[1]-2i) > 1e-12 {
		t.Fatalf("x[1] = %v, want 2i", x[1])
	}
}

func TestToneValidation(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Tone(1, 1, 0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestAWGNPowerAndDeterminism(t *testing.T) {
	g := NewGenerator(core.WithSeed(7))
	a, err := g.AWGN(0.5, 20000)
	if err != nil {
		t.Fatalf("AWGN() error = %v", err)
	}
	b, _ := g.AWGN(0.5, 20000)

	sum := 0.0
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at %d", i)
		}
		sum += real(a[i])*real(a[i]) + imag(a[i])*imag(a[i])
	}
	if p := sum / float64(len(a)); math.Abs(p-0.5) > 0.03 {
		t.Fatalf("mean power = %v, want ~0.5", p)
	}

	g.SetSeed(8)
	c, _ := g.AWGN(0.5, 4)
	if c[0] == a[0] && c[1] == a[1] {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestAWGNZeroPower(t *testing.T) {
	g := NewGenerator()
	x, err := g.AWGN(0, 4)
	if err != nil {
		t.Fatalf("AWGN() error = %v", err)
	}
	for i, v := range x {
		if v != 0 {
			t.Fatalf("x[%d] = %v, want 0", i, v)
		}
	}
	if _, err := g.AWGN(-1, 4); err == nil {
		t.Fatal("expected error for negative power")
	}
}

func TestMessageCoversAlphabet(t *testing.T) {
	g := NewGenerator(core.WithSeed(3))
	msg, err := g.Message(40, 16)
	if err != nil {
		t.Fatalf("Message() error = %v", err)
	}
	if len(msg) != 40 {
		t.Fatalf("len = %d, want 40", len(msg))
	}
	seen := make(map[int]bool)
	for _, s := range msg {
		if s < 0 || s >= 16 {
			t.Fatalf("symbol %d out of range", s)
		}
		seen[s] = true
	}
	if len(seen) != 16 {
		t.Fatalf("distinct symbols = %d, want 16", len(seen))
	}
}

func TestMessageValidation(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Message(3, 4); err == nil {
		t.Fatal("expected error when n < m")
	}
	if _, err := g.Message(3, 0); err == nil {
		t.Fatal("expected error when m < 1")
	}
}
