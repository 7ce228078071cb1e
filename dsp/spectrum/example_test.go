package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-modem/dsp/spectrum"
)

func ExampleBinFrequency() {
	const n, fs = 1024, 300000.0
	fmt.Printf("%.2f %.2f\n", spectrum.BinFrequency(1, n, fs), spectrum.BinFrequency(n-1, n, fs))
	// Output:
	// 292.97 -292.97
}
