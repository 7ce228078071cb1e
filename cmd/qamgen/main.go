// Command qamgen writes a synthetic noisy capture of a modulated burst.
//
// Usage:
//
//	qamgen [flags]
//
// A random message is modulated, padded with noise on both sides, rotated,
// shifted off its carrier and buried in white noise, then written as raw
// float32 I/Q. Without -o the file gets a gqrx-style name so constdemod
// can read the sample rate back from it.
//
// Examples:
//
//	qamgen -n 400 -offset 750
//	qamgen -m 16 -shape sunflower -noise 1e-3 -o burst.raw -symbols sent.txt
//	qamgen -kind cpfsk -carrier 2000 -baseband
//	qamgen -m 16 -snr 18
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/signal"
	"github.com/cwbudde/algo-modem/modem/channel"
	"github.com/cwbudde/algo-modem/modem/constellation"
	"github.com/cwbudde/algo-modem/modem/iqfile"
	"github.com/cwbudde/algo-modem/modem/mod"
	timestats "github.com/cwbudde/algo-modem/stats/time"
)

type options struct {
	output   string
	symbols  string
	kind     string
	shape    string
	rate     float64
	center   float64
	carrier  float64
	offset   float64
	rotate   float64
	noise    float64
	snr      float64
	n        int
	m        int
	sps      int
	pad      int
	seed     int64
	baseband bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("qamgen: ")

	var o options
	flag.StringVar(&o.output, "o", "", "output file (default: gqrx-style name in the working directory)")
	flag.StringVar(&o.symbols, "symbols", "", "also write the transmitted symbols to this file")
	flag.StringVar(&o.kind, "kind", "qam", "modulation: ask, fsk, psk, qpsk, qam or cpfsk")
	flag.StringVar(&o.shape, "shape", "square", "constellation shape for qam: square or sunflower")
	flag.Float64Var(&o.rate, "rate", 256000, "sample rate in Hz")
	flag.Float64Var(&o.center, "center", 100e6, "tuned frequency recorded in the file name, in Hz")
	flag.Float64Var(&o.carrier, "carrier", 0, "carrier frequency in Hz")
	flag.Float64Var(&o.offset, "offset", 500, "carrier offset added by the channel, in Hz")
	flag.Float64Var(&o.rotate, "rotate", 0, "phase rotation added by the channel, in degrees")
	flag.Float64Var(&o.noise, "noise", 1e-4, "white noise power")
	flag.Float64Var(&o.snr, "snr", math.NaN(), "signal-to-noise ratio in dB; overrides -noise when set")
	flag.IntVar(&o.n, "n", 200, "number of symbols")
	flag.IntVar(&o.m, "m", 4, "alphabet size")
	flag.IntVar(&o.sps, "sps", 16, "samples per symbol")
	flag.IntVar(&o.pad, "pad", 600, "noise-only samples before and after the burst")
	flag.Int64Var(&o.seed, "seed", 1, "random seed for message and noise")
	flag.BoolVar(&o.baseband, "baseband", false, "shift frequency-keyed signals to baseband before the channel")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qamgen [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Writes a synthetic noisy raw float32 I/Q capture.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(o); err != nil {
		log.Fatal(err)
	}
}

func run(o options) error {
	capture, symbols, err := generate(o)
	if err != nil {
		return err
	}

	path := o.output
	if path == "" {
		path = iqfile.GqrxName(iqfile.Capture{
			Time:            time.Now(),
			CenterFrequency: o.center,
			SampleRate:      o.rate,
		})
	}
	if err := iqfile.WriteFile(path, capture); err != nil {
		return err
	}
	log.Printf("wrote %d samples (%d symbols of %s-%d) to %s", len(capture), len(symbols), o.kind, o.m, path)

	if o.symbols == "" {
		return nil
	}
	return writeSymbols(o.symbols, symbols)
}

func writeSymbols(path string, symbols []int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	for i, s := range symbols {
		sep := " "
		if i == len(symbols)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "%d%s", s, sep); err != nil {
			return err
		}
	}
	return w.Flush()
}

func generate(o options) ([]complex64, []int, error) {
	if o.sps < 1 {
		return nil, nil, errors.New("-sps must be >= 1")
	}
	if !(o.rate > 0) {
		return nil, nil, errors.New("-rate must be > 0")
	}

	gen := signal.NewGenerator(core.WithSampleRate(o.rate), core.WithSeed(o.seed))
	symbols, err := gen.Message(o.n, o.m)
	if err != nil {
		return nil, nil, err
	}

	p := mod.Params{
		Carrier:    o.carrier,
		SampleRate: o.rate,
		Duration:   (float64(o.n*o.sps) + 0.5) / o.rate,
		Amplitude:  1,
	}
	m, err := mod.New(p, symbols)
	if err != nil {
		return nil, nil, err
	}

	kind, err := mod.ParseKind(o.kind)
	if err != nil {
		return nil, nil, err
	}

	var sig mod.Signal
	if kind == mod.QuadratureAmplitude {
		shape, err := constellation.ParseShape(o.shape)
		if err != nil {
			return nil, nil, err
		}
		sig, err = m.QAM(shape)
		if err != nil {
			return nil, nil, err
		}
	} else {
		sig, err = m.Modulate(kind)
		if err != nil {
			return nil, nil, err
		}
	}
	if o.baseband {
		sig = sig.Baseband()
	}

	noise := o.noise
	level := timestats.CalculateMagnitude(core.Widen(sig.Samples))
	power := level.RMS * level.RMS
	if !math.IsNaN(o.snr) {
		noise = power / core.DBPowerToLinear(o.snr)
	}
	log.Printf("signal power %.3g, noise power %.3g, SNR %.1f dB", power, noise, core.LinearPowerToDB(power/noise))

	samples, err := channel.PadWithNoise(sig.Samples, o.pad, noise, o.seed+1)
	if err != nil {
		return nil, nil, err
	}
	samples = channel.Rotate(samples, o.rotate)
	samples, err = channel.Shift(samples, o.rate, o.offset)
	if err != nil {
		return nil, nil, err
	}
	samples, err = channel.AddNoise(samples, noise, o.seed+2)
	if err != nil {
		return nil, nil, err
	}
	return samples, symbols, nil
}
