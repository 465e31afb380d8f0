package kernel

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-filterunit/dsp/filter/design"
	"github.com/cwbudde/algo-filterunit/dsp/param"
	"github.com/cwbudde/algo-vecmath"
)

// ErrLengthMismatch is returned when response buffers differ in length.
var ErrLengthMismatch = errors.New("kernel: frequency and output lengths differ")

// MagnitudeResponse writes the linear magnitude of the filter at each
// frequency in freqs into dst, using the control-plane targets. It
// allocates and must not be called from the render plane.
func (k *Kernel) MagnitudeResponse(freqs, dst []float64) error {
	if len(freqs) != len(dst) {
		return ErrLengthMismatch
	}

	sr := k.cfg.SampleRate
	fc := design.ClampCutoff(k.store.Target(param.Cutoff), k.minCutoff, sr)
	res := k.store.Target(param.Resonance)

	re := make([]float64, len(freqs))
	im := make([]float64, len(freqs))
	for i, f := range freqs {
		h := k.topo.Response(f, fc, res, sr)
		re[i], im[i] = real(h), imag(h)
	}

	vecmath.Magnitude(dst, re, im)

	return nil
}

// ImpulseResponse renders n samples of the filter's impulse response at the
// control-plane targets on a private topology, leaving the kernel's state
// untouched.
func (k *Kernel) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	sr := k.cfg.SampleRate
	fc := design.ClampCutoff(k.store.Target(param.Cutoff), k.minCutoff, sr)
	res := k.store.Target(param.Resonance)

	topo := NewTopology(k.variant)
	topo.Allocate(1, n)
	topo.Tune(fc, res, sr)

	ir := make([]float64, n)
	ir[0] = 1
	topo.Process(0, ir)

	for i, x := range ir {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			ir[i] = 0
		}
	}

	return ir
}
