package mod

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modem/modem"
)

// Params holds the timing and level of a transmission.
type Params struct {
	// Carrier is the nominal carrier frequency in Hz.
	Carrier float64
	// SampleRate in Hz.
	SampleRate float64
	// Duration of the whole transmission in seconds.
	Duration float64
	// Amplitude scales every sample. Must be > 0.
	Amplitude float64
}

// Validate reports whether p describes a usable time axis.
func (p Params) Validate() error {
	switch {
	case !(p.SampleRate > 0) || math.IsInf(p.SampleRate, 0):
		return fmt.Errorf("mod: sample rate %v: %w", p.SampleRate, modem.ErrConfiguration)
	case !(p.Duration > 0) || math.IsInf(p.Duration, 0):
		return fmt.Errorf("mod: duration %v: %w", p.Duration, modem.ErrConfiguration)
	case !(p.Amplitude > 0) || math.IsInf(p.Amplitude, 0):
		return fmt.Errorf("mod: amplitude %v: %w", p.Amplitude, modem.ErrConfiguration)
	case math.IsNaN(p.Carrier) || math.IsInf(p.Carrier, 0):
		return fmt.Errorf("mod: carrier %v: %w", p.Carrier, modem.ErrConfiguration)
	}
	return nil
}

// NumSamples returns floor(Duration*SampleRate), the length of the time axis.
func (p Params) NumSamples() int {
	return int(math.Floor(p.Duration * p.SampleRate))
}

// SamplesPerSymbol returns floor(Duration*SampleRate/n) for an n-symbol
// message. Fewer than one sample per symbol is an error.
func (p Params) SamplesPerSymbol(n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("mod: %d symbols: %w", n, modem.ErrConfiguration)
	}
	sps := int(math.Floor(p.Duration * p.SampleRate / float64(n)))
	if sps < 1 {
		return 0, fmt.Errorf("mod: %v s at %v Hz gives no samples for %d symbols: %w",
			p.Duration, p.SampleRate, n, modem.ErrConfiguration)
	}
	return sps, nil
}

// Kind identifies the keying scheme that produced a Signal.
type Kind int

const (
	Amplitude Kind = iota
	Frequency
	Phase
	QuadraturePhase
	QuadratureAmplitude
	ContinuousPhaseFrequency
)

var kindNames = map[Kind]string{
	Amplitude:                "ask",
	Frequency:                "fsk",
	Phase:                    "psk",
	QuadraturePhase:          "qpsk",
	QuadratureAmplitude:      "qam",
	ContinuousPhaseFrequency: "cpfsk",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// FrequencyKeyed reports whether symbols select the instantaneous frequency.
func (k Kind) FrequencyKeyed() bool {
	return k == Frequency || k == ContinuousPhaseFrequency
}

// ParseKind resolves a kind name as printed by Kind.String.
func ParseKind(name string) (Kind, error) {
	for k, s := range kindNames {
		if s == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("mod: unknown modulation %q: %w", name, modem.ErrConfiguration)
}
