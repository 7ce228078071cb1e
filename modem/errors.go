package modem

import "errors"

// Errors shared across the modem packages.
var (
	// ErrConfiguration reports an invalid parameter: bad M, mismatched
	// sequence lengths, samples per symbol below one, unknown kind.
	ErrConfiguration = errors.New("modem: invalid configuration")

	// ErrConstellation reports a constellation that cannot serve as a
	// symbol map (too few points, duplicates, degenerate geometry).
	ErrConstellation = errors.New("modem: invalid constellation")

	// ErrDetection reports that no signal was found above the trim threshold.
	ErrDetection = errors.New("modem: no signal detected")

	// ErrEstimation reports a frequency-offset estimate that cannot be trusted.
	ErrEstimation = errors.New("modem: unreliable estimate")

	// ErrDecision reports an empty map or sample stream passed to decision.
	ErrDecision = errors.New("modem: decision input empty")
)
