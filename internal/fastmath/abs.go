package fastmath

// Abs returns |c| without the overflow guarding of cmplx.Abs. Sample
// magnitudes in the receive chain are normalized and far from overflow.
func Abs(c complex128) float64 {
	re, im := real(c), imag(c)
	return Sqrt(re*re + im*im)
}
