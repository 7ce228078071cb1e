package sync_test

import (
	"fmt"

	modemsync "github.com/cwbudde/algo-modem/modem/sync"
)

func ExampleDecimate() {
	in := []complex64{0, 1, 2, 3, 4, 5, 6, 7}
	phase, _, err := modemsync.SearchTimingPhase(in, 4)
	if err != nil {
		panic(err)
	}
	out, err := modemsync.Decimate(in, phase, 4)
	if err != nil {
		panic(err)
	}
	fmt.Println(phase, out)
	// Output:
	// 3 [(3+0i) (7+0i)]
}
