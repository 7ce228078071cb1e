// Package sync recovers one-sample-per-symbol, unit-normalized symbol
// estimates from an unsynchronized capture.
//
// The stages run in a fixed order and each one is exported for callers
// that want to drive them by hand:
//
//	Trim -> EstimateFrequencyOffset -> Derotate -> Oversample ->
//	SearchTimingPhase -> Decimate -> Normalize
//
// Pipeline strings them together. Every stage fails fast and wraps one of
// the modem sentinel errors; there is no internal retry, so callers adjust
// the options (std cut, padding, order, oversampling) and run again.
//
// An M-fold symmetric constellation leaves an M-fold phase ambiguity that
// no stage here can resolve. Rotate applies the caller's correction.
package sync
