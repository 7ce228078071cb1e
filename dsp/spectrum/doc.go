// Package spectrum provides the FFT-domain helpers used for carrier
// estimation: zero-padded complex transforms, magnitude extraction and
// peak-bin search with signed bin-to-frequency mapping.
//
// Transforms are computed with algo-fft; magnitudes use the SIMD
// kernels from algo-vecmath.
package spectrum
