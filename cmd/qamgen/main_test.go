package main

import (
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-modem/modem/iqfile"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func defaults() options {
	return options{
		kind: "qam", shape: "square",
		rate: 64000, offset: 250, noise: 1e-4, snr: math.NaN(),
		n: 50, m: 4, sps: 8, pad: 100, seed: 9,
	}
}

func TestGenerateLayout(t *testing.T) {
	o := defaults()
	capture, symbols, err := generate(o)
	if err != nil {
		t.Fatal(err)
	}
	if len(symbols) != o.n {
		t.Fatalf("len(symbols) = %d, want %d", len(symbols), o.n)
	}
	if want := o.n*o.sps + 2*o.pad; len(capture) != want {
		t.Fatalf("len(capture) = %d, want %d", len(capture), want)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, _, err := generate(defaults())
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := generate(defaults())
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

// padPower is the mean power of the noise-only lead-in of a capture.
func padPower(capture []complex64, pad int) float64 {
	sum := 0.0
	for _, v := range capture[:pad] {
		sum += float64(real(v)*real(v) + imag(v)*imag(v))
	}
	return sum / float64(pad)
}

func TestGenerateNoiseLevel(t *testing.T) {
	o := defaults()
	o.pad = 4000

	// the lead-in carries padding noise plus channel noise, twice the
	// configured power
	capture, _, err := generate(o)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := padPower(capture, o.pad), 2*o.noise; math.Abs(got-want) > 0.15*want {
		t.Fatalf("noise power = %v, want ~%v", got, want)
	}

	// a normalized square QAM-4 map has unit components, so signal power
	// is 2 and 20 dB SNR means noise power 0.02
	o.snr = 20
	capture, _, err = generate(o)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := padPower(capture, o.pad), 2*0.02; math.Abs(got-want) > 0.15*want {
		t.Fatalf("noise power at 20 dB = %v, want ~%v", got, want)
	}
}

func TestGenerateOtherKinds(t *testing.T) {
	for _, kind := range []string{"ask", "psk", "qpsk", "fsk", "cpfsk"} {
		t.Run(kind, func(t *testing.T) {
			o := defaults()
			o.kind = kind
			o.carrier = 4000
			o.baseband = true
			if _, _, err := generate(o); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestGenerateRejects(t *testing.T) {
	testCases := []struct {
		desc string
		edit func(*options)
	}{
		{"zero sps", func(o *options) { o.sps = 0 }},
		{"zero rate", func(o *options) { o.rate = 0 }},
		{"unknown kind", func(o *options) { o.kind = "ofdm" }},
		{"unknown shape", func(o *options) { o.shape = "hex" }},
		{"message shorter than alphabet", func(o *options) { o.n = 2 }},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			o := defaults()
			tC.edit(&o)
			if _, _, err := generate(o); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRunWritesCapture(t *testing.T) {
	dir := t.TempDir()
	o := defaults()
	o.output = filepath.Join(dir, "burst.raw")
	o.symbols = filepath.Join(dir, "sent.txt")
	if err := run(o); err != nil {
		t.Fatal(err)
	}

	got, err := iqfile.ReadFile(o.output)
	if err != nil {
		t.Fatal(err)
	}
	if want := o.n*o.sps + 2*o.pad; len(got) != want {
		t.Fatalf("len = %d, want %d", len(got), want)
	}
	if info, err := os.Stat(o.symbols); err != nil || info.Size() == 0 {
		t.Fatalf("symbols file: %v", err)
	}
}
