package param_test

import (
	"fmt"

	"github.com/cwbudde/algo-filterunit/dsp/core"
	"github.com/cwbudde/algo-filterunit/dsp/param"
)

func ExampleStore() {
	s := param.NewStore()
	s.Configure(4, core.RampLinear)

	// Control plane.
	s.SetTarget(param.Cutoff, 12000)

	// Render plane.
	s.Sync()
	for range 4 {
		s.Step()
		fmt.Println(s.CurrentValue(param.Cutoff))
	}

	// Output:
	// 18000
	// 16000
	// 14000
	// 12000
}

func ExamplePresets() {
	for _, p := range param.Presets() {
		fmt.Printf("%d %-9s %6.0f Hz %+3.0f dB\n", p.Number, p.Name, p.Values[param.Cutoff], p.Values[param.Resonance])
	}

	// Output:
	// 0 Prominent   2500 Hz  +5 dB
	// 1 Bright     14000 Hz +12 dB
	// 2 Warm         384 Hz  -3 dB
}
