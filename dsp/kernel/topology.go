package kernel

import (
	"fmt"
	"strings"
)

// Topology is a filter structure the kernel can host. Coefficients are
// shared by all channels; each channel owns its state.
//
// Tune and TuneRamp are called once per sub-block before Process runs for
// every channel. After TuneRamp, Process consumes one coefficient set per
// frame and buf must have the same length as the trajectories. Response must
// not touch runtime state; it is called from the control plane while the
// render plane runs.
type Topology interface {
	Name() string
	Allocate(channels, maxFrames int)
	Tune(cutoffHz, resonanceDB, sampleRate float64)
	TuneRamp(cutoffs, resonances []float64, sampleRate float64)
	Process(ch int, buf []float64)
	Reset()
	ResetChannel(ch int)
	Settle(ch int) bool
	Response(freqHz, cutoffHz, resonanceDB, sampleRate float64) complex128
}

// Variant selects the topology a Kernel runs.
type Variant int

const (
	// VariantLowpass is the resonant 12 dB/oct biquad low-pass.
	VariantLowpass Variant = iota
	// VariantLowpass24 cascades the resonant section with a Butterworth
	// section for a 24 dB/oct slope.
	VariantLowpass24
	// VariantSVF is a trapezoidal state-variable low-pass. It tolerates
	// fast modulation best.
	VariantSVF
)

var variantNames = [...]string{
	VariantLowpass:   "lowpass",
	VariantLowpass24: "lowpass24",
	VariantSVF:       "svf",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}

	return variantNames[v]
}

// ParseVariant resolves a variant name, ignoring case.
func ParseVariant(name string) (Variant, error) {
	for i, n := range variantNames {
		if strings.EqualFold(n, name) {
			return Variant(i), nil
		}
	}

	return 0, fmt.Errorf("kernel: unknown variant %q", name)
}

// Variants lists every variant.
func Variants() []Variant {
	return []Variant{VariantLowpass, VariantLowpass24, VariantSVF}
}

// NewTopology returns an unallocated topology for v. Unknown variants fall
// back to VariantLowpass.
func NewTopology(v Variant) Topology {
	switch v {
	case VariantLowpass24:
		return &lowpass24{}
	case VariantSVF:
		return &stateVariable{}
	default:
		return &lowpass{}
	}
}
