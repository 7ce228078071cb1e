// Package mod synthesizes complex baseband or carrier-borne waveforms from
// symbol streams.
//
// Every keying scheme reduces to one primitive, Synthesize, which evaluates
//
//	z[k] = amp[k] * exp(i*(2*pi*freq[k]*t[k] + theta[k])),  t[k] = k/fs
//
// with each of freq, theta and amp either a constant or a per-sample
// sequence. A Modulator validates the symbol stream once, derives the
// alphabet size and samples per symbol, and produces an immutable Signal
// that records which Kind produced it. Frequency-keyed signals also carry
// their keyed tones so Baseband can centre them correctly.
package mod
