package core

// Widen converts single-precision samples to complex128.
func Widen(in []complex64) []complex128 {
	out := make([]complex128, len(in))
	for i, v := range in {
		out[i] = complex128(v)
	}
	return out
}

// Narrow converts complex128 samples to single precision.
func Narrow(in []complex128) []complex64 {
	out := make([]complex64, len(in))
	for i, v := range in {
		out[i] = complex64(v)
	}
	return out
}

// Split copies the real and imaginary parts of in into two new slices.
func Split(in []complex128) (re, im []float64) {
	re = make([]float64, len(in))
	im = make([]float64, len(in))
	for i, v := range in {
		re[i] = real(v)
		im[i] = imag(v)
	}
	return re, im
}

// SplitTo writes the parts of in into re and im, which must be at least len(in) long.
func SplitTo(re, im []float64, in []complex128) {
	if len(in) == 0 {
		return
	}
	_ = re[len(in)-1]
	_ = im[len(in)-1]
	for i, v := range in {
		re[i] = real(v)
		im[i] = imag(v)
	}
}

// Join builds complex samples from separate parts of equal length.
func Join(re, im []float64) []complex128 {
	n := min(len(re), len(im))
	out := make([]complex128, n)
	for i := range n {
		out[i] = complex(re[i], im[i])
	}
	return out
}

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}
