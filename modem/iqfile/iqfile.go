// Package iqfile reads and writes raw captures: headerless interleaved
// little-endian float32 I/Q pairs, the layout written by gqrx and most SDR
// front ends. Sample rate and tuning are carried out of band, usually in
// the file name.
package iqfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrFormat reports a capture or file name that does not follow the
// expected layout.
var ErrFormat = errors.New("iqfile: malformed capture")

const bytesPerSample = 8

// Read decodes every sample from r.
func Read(r io.Reader) ([]complex64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("iqfile: read: %w", err)
	}
	if len(raw)%bytesPerSample != 0 {
		return nil, fmt.Errorf("iqfile: %d bytes is not a whole number of samples: %w", len(raw), ErrFormat)
	}

	out := make([]complex64, len(raw)/bytesPerSample)
	for i := range out {
		b := raw[i*bytesPerSample:]
		re := math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))
		out[i] = complex(re, im)
	}
	return out, nil
}

// ReadFile reads a capture from path.
func ReadFile(path string) ([]complex64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("iqfile: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Write encodes samples to w.
func Write(w io.Writer, samples []complex64) error {
	bw := bufio.NewWriter(w)
	var buf [bytesPerSample]byte
	for _, v := range samples {
		binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(real(v)))
		binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(imag(v)))
		if _, err := bw.Write(buf[:]); err != nil {
			return fmt.Errorf("iqfile: write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("iqfile: write: %w", err)
	}
	return nil
}

// WriteFile writes samples to path, replacing any existing file.
func WriteFile(path string, samples []complex64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("iqfile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("iqfile: %w", cerr)
		}
	}()

	return Write(f, samples)
}

// Capture is the metadata a gqrx file name carries.
type Capture struct {
	Time            time.Time
	CenterFrequency float64
	SampleRate      float64
}

const gqrxTimeLayout = "20060102_150405"

// ParseGqrxName extracts capture metadata from a gqrx recording name,
// gqrx_YYYYMMDD_HHMMSS_<center Hz>_<rate>_fc.raw. Directories and the
// extension are ignored.
func ParseGqrxName(name string) (Capture, error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	fields := strings.Split(base, "_")
	if len(fields) < 5 || fields[0] != "gqrx" {
		return Capture{}, fmt.Errorf("iqfile: %q is not a gqrx name: %w", name, ErrFormat)
	}

	ts, err := time.Parse(gqrxTimeLayout, fields[1]+"_"+fields[2])
	if err != nil {
		return Capture{}, fmt.Errorf("iqfile: %q timestamp: %w", name, errors.Join(ErrFormat, err))
	}
	center, err := strconv.ParseFloat(fields[3], 64)
	if err != nil || center < 0 {
		return Capture{}, fmt.Errorf("iqfile: %q center frequency %q: %w", name, fields[3], ErrFormat)
	}
	rate, err := strconv.ParseFloat(fields[4], 64)
	if err != nil || !(rate > 0) {
		return Capture{}, fmt.Errorf("iqfile: %q sample rate %q: %w", name, fields[4], ErrFormat)
	}

	return Capture{Time: ts, CenterFrequency: center, SampleRate: rate}, nil
}

// GqrxName formats c the way gqrx names its recordings.
func GqrxName(c Capture) string {
	return fmt.Sprintf("gqrx_%s_%d_%d_fc.raw",
		c.Time.UTC().Format(gqrxTimeLayout),
		int64(math.Round(c.CenterFrequency)),
		int64(math.Round(c.SampleRate)))
}
