package response_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filterunit/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterunit/dsp/filter/design"
	"github.com/cwbudde/algo-filterunit/measure/response"
)

func ExampleAnalyzer_Analyze() {
	const sampleRate = 48000.0

	ir := make([]float64, 8192)
	biquad.NewSection(design.Lowpass(1000, design.ButterworthQ, sampleRate)).ImpulseResponse(ir)

	metrics, err := response.NewAnalyzer(sampleRate, 0).Analyze(ir)
	if err != nil {
		panic(err)
	}

	fmt.Printf("DC gain = %.3f\n", math.Pow(10, metrics.DCGainDB/20))
	fmt.Printf("cutoff  = %.0f Hz\n", metrics.CutoffHz)

	// Output:
	// DC gain = 1.000
	// cutoff  = 1000 Hz
}
