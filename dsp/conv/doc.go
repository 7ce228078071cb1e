// Package conv provides direct time-domain convolution and the moving
// averages built on it.
//
// Kernels in this module are short (envelope windows, frequency smoothing),
// so only the O(N*M) direct form is provided. Output modes follow the usual
// full / same / valid convention:
//
//	full, err := conv.Direct(signal, kernel)
//	valid, err := conv.ConvolveMode(signal, kernel, conv.ModeValid)
//	env, err := conv.MovingAverage(magnitudes, 10, conv.ModeValid)
package conv
