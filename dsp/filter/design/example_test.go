package design_test

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-filterunit/dsp/filter/design"
)

func ExampleResonantLowpass() {
	fc := design.ClampCutoff(30000, 12, 44100)
	c := design.ResonantLowpass(2500, 5, 44100)

	fmt.Printf("clamped cutoff: %.1f Hz\n", fc)
	fmt.Printf("DC gain: %.3f\n", cmplx.Abs(c.Response(0, 44100)))
	fmt.Printf("Q: %.3f\n", design.ResonanceQ(5))

	// Output:
	// clamped cutoff: 21829.5 Hz
	// DC gain: 1.000
	// Q: 1.778
}
