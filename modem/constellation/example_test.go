package constellation_test

import (
	"fmt"

	"github.com/cwbudde/algo-modem/modem/constellation"
)

func ExampleBuild() {
	m, err := constellation.Build(constellation.ShapeSquare, 16)
	if err != nil {
		panic(err)
	}
	fmt.Println(len(m), m[0])
	// Output:
	// 16 (-0.3333333333333333-0.3333333333333333i)
}
