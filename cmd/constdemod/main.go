// Command constdemod blindly demodulates a raw I/Q capture of a QAM burst.
//
// Usage:
//
//	constdemod [flags] capture.raw
//
// The capture is trimmed to the burst, its carrier offset is removed, the
// symbol timing is recovered and every symbol is decided against a
// constellation map. The sample rate is read from gqrx-style file names
// unless -rate is given.
//
// Examples:
//
//	constdemod -sps 16 gqrx_20240102_030405_100000000_256000_fc.raw
//	constdemod -rate 256000 -sps 16 -m 16 -bits capture.raw
//	constdemod -sps 16 -rotate 1 -o symbols.txt capture.raw
//	constdemod -sps 16 -clusters capture.raw
//
// With -clusters the constellation is learned from the capture itself, so
// symbol indices follow the order of the detected centres (by amplitude,
// then phase) rather than the -shape map.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/algo-modem/dsp/window"
	"github.com/cwbudde/algo-modem/modem/constellation"
	"github.com/cwbudde/algo-modem/modem/demod"
	"github.com/cwbudde/algo-modem/modem/iqfile"
	modemsync "github.com/cwbudde/algo-modem/modem/sync"
)

type options struct {
	input      string
	output     string
	rate       float64
	sps        int
	m          int
	shape      string
	rotate     int
	oversample int
	window     int
	stdCut     float64
	padding    int
	order      int
	maxOffset  float64
	hann       bool
	bits       bool
	clusters   bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("constdemod: ")

	var o options
	flag.StringVar(&o.output, "o", "-", "output file, - for stdout")
	flag.Float64Var(&o.rate, "rate", 0, "capture sample rate in Hz (0: parse from gqrx file name)")
	flag.IntVar(&o.sps, "sps", 0, "samples per symbol in the capture (required)")
	flag.IntVar(&o.m, "m", 4, "constellation size")
	flag.StringVar(&o.shape, "shape", "square", "constellation shape: square or sunflower")
	flag.IntVar(&o.rotate, "rotate", 0, "quarter turns applied before decision, resolves phase ambiguity (square shape only)")
	flag.IntVar(&o.oversample, "oversample", 10, "oversampling factor for the timing search")
	flag.IntVar(&o.window, "window", 10, "envelope moving-average length for trimming")
	flag.Float64Var(&o.stdCut, "stdcut", 1.5, "trim threshold in envelope standard deviations")
	flag.IntVar(&o.padding, "padding", 0, "samples kept on each side of the trimmed burst")
	flag.IntVar(&o.order, "order", 4, "power the burst is raised to before the offset FFT")
	flag.Float64Var(&o.maxOffset, "max-offset", 0, "largest accepted carrier offset in Hz (0: unbounded)")
	flag.BoolVar(&o.hann, "hann", false, "apply a Hann window before the offset FFT")
	flag.BoolVar(&o.bits, "bits", false, "write bits (MSB first) instead of symbol indices")
	flag.BoolVar(&o.clusters, "clusters", false, "decide against k-means cluster centres of the recovered samples instead of the -shape map")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: constdemod [flags] capture.raw\n\n")
		fmt.Fprintf(os.Stderr, "Blindly demodulates a raw float32 I/Q capture of a QAM burst.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	o.input = flag.Arg(0)

	if err := run(o); err != nil {
		log.Fatal(err)
	}
}

func run(o options) error {
	if o.sps < 1 {
		return errors.New("-sps is required and must be >= 1")
	}
	if o.rotate != 0 && o.shape != constellation.ShapeSquare.String() {
		return fmt.Errorf("-rotate needs the four-fold symmetry of the square shape, not %q", o.shape)
	}

	rate := o.rate
	if rate == 0 {
		c, err := iqfile.ParseGqrxName(o.input)
		if err != nil {
			return fmt.Errorf("no -rate given and %w", err)
		}
		rate = c.SampleRate
		log.Printf("%s: %.0f S/s tuned to %.0f Hz", o.input, c.SampleRate, c.CenterFrequency)
	}

	samples, err := iqfile.ReadFile(o.input)
	if err != nil {
		return err
	}

	shape, err := constellation.ParseShape(o.shape)
	if err != nil {
		return err
	}
	cmap, err := constellation.Build(shape, o.m)
	if err != nil {
		return err
	}

	symbols, err := demodulate(samples, rate, cmap, o)
	if err != nil {
		return err
	}

	if o.bits {
		bits, err := demod.SymbolsToBits(symbols, demod.BitsPerSymbol(len(cmap)))
		if err != nil {
			return err
		}
		return writeOutput(o.output, func(w io.Writer) error { return writeBits(w, bits) })
	}
	return writeOutput(o.output, func(w io.Writer) error { return writeSymbols(w, symbols) })
}

// writeOutput runs write against stdout for "-" and against a created file
// otherwise, reporting the close error of the file.
func writeOutput(path string, write func(io.Writer) error) (err error) {
	if path == "-" {
		return write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	return write(f)
}

func syncOptions(o options) []modemsync.Option {
	opts := []modemsync.Option{
		modemsync.WithWindow(o.window),
		modemsync.WithStdCut(o.stdCut),
		modemsync.WithPadding(o.padding),
		modemsync.WithOrder(o.order),
		modemsync.WithOversample(o.oversample),
		modemsync.WithMaxOffset(o.maxOffset),
	}
	if o.hann {
		opts = append(opts, modemsync.WithSpectralWindow(window.TypeHann))
	}
	return opts
}

func demodulate(samples []complex64, rate float64, cmap constellation.Map, o options) ([]int, error) {
	p, err := modemsync.New(rate, o.sps, syncOptions(o)...)
	if err != nil {
		return nil, err
	}

	res, err := p.Run(samples)
	if err != nil {
		return nil, err
	}
	log.Printf("burst [%d, %d) of %d samples, offset %.1f Hz (+/- %.1f), timing phase %d/%d, %d symbols",
		res.Start, res.Stop, len(samples), res.FrequencyOffset, res.Estimate.Resolution(),
		res.TimingPhase, res.Stride, len(res.Samples))

	recovered := res.Samples
	if o.rotate != 0 {
		recovered, err = modemsync.Rotate(recovered, o.rotate, 4)
		if err != nil {
			return nil, err
		}
	}

	if o.clusters {
		centres, err := constellation.DetectClusters(recovered, len(cmap))
		if err != nil {
			return nil, err
		}
		cmap, err = constellation.Build(constellation.Custom(centres), len(cmap))
		if err != nil {
			return nil, err
		}
		for i, c := range cmap {
			log.Printf("cluster %d: %.3f", i, c)
		}
	}

	return demod.Decide(recovered, cmap)
}

func writeSymbols(w io.Writer, symbols []int) error {
	for i, s := range symbols {
		sep := " "
		if i == len(symbols)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "%d%s", s, sep); err != nil {
			return err
		}
	}
	return nil
}

func writeBits(w io.Writer, bits []byte) error {
	buf := make([]byte, len(bits)+1)
	for i, b := range bits {
		buf[i] = '0' + b
	}
	buf[len(bits)] = '\n'
	_, err := w.Write(buf)
	return err
}
