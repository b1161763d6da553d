package onepole_test

import (
	"fmt"

	"github.com/cwbudde/algo-onepole/dsp/filter/onepole"
)

func ExampleDeriveCoefficient() {
	c := onepole.DeriveCoefficient(1000, 48000)
	fmt.Printf("a=%.6f g=%.6f\n", c.A, c.G)

	// Output:
	// a=0.122531 g=0.065543
}

func ExampleNew_stereoHighpass() {
	f, err := onepole.New(48000,
		onepole.WithCutoffHz(1000),
		onepole.WithMode(onepole.ModeHighpass),
		onepole.WithChannels(2),
	)
	if err != nil {
		panic(err)
	}

	left := []float64{1, 1, 1, 1}
	right := []float64{0, 0, 0, 0}
	f.ProcessFrames([][]float64{left, right})

	fmt.Printf("%.4f %.4f %.4f %.4f | %v\n", left[0], left[1], left[2], left[3], right)

	// Output:
	// 0.8775 0.7700 0.6756 0.5928 | [0 0 0 0]
}

func ExampleFilter_SetMode() {
	f, err := onepole.New(48000, onepole.WithChannels(1))
	if err != nil {
		panic(err)
	}

	f.SetCoefficient(0.5)

	lp := f.ProcessSample(0, 1)
	f.SetMode(onepole.ModeAllpass)
	ap := f.ProcessSample(0, 1)

	fmt.Println(lp, ap, f.Lowpass(0))

	// Output:
	// 0.5 0.5 0.75
}
