package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-modem/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(300000),
		core.WithSeed(42),
	)

	fmt.Printf("sampleRate=%.0f seed=%d\n", cfg.SampleRate, cfg.Seed)

	// Output:
	// sampleRate=300000 seed=42
}

func ExampleNextPowerOf2() {
	fmt.Println(core.NextPowerOf2(1000), core.NextPowerOf2(1024))

	// Output:
	// 1024 1024
}
