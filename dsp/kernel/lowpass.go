package kernel

import (
	"github.com/cwbudde/algo-filterunit/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterunit/dsp/filter/design"
)

// lowpass runs the resonant biquad in Direct Form II Transposed.
type lowpass struct {
	sections []biquad.Section
	coeffs   biquad.Coefficients
	ramp     []biquad.Coefficients
	ramping  bool
}

func (t *lowpass) Name() string { return VariantLowpass.String() }

func (t *lowpass) Allocate(channels, maxFrames int) {
	t.sections = make([]biquad.Section, channels)
	t.ramp = make([]biquad.Coefficients, maxFrames)
	t.ramping = false

	biquad.Prime()
}

func (t *lowpass) Tune(cutoffHz, resonanceDB, sampleRate float64) {
	t.coeffs = design.ResonantLowpass(cutoffHz, resonanceDB, sampleRate)
	t.ramping = false
}

func (t *lowpass) TuneRamp(cutoffs, resonances []float64, sampleRate float64) {
	for i, fc := range cutoffs {
		t.ramp[i] = design.ResonantLowpass(fc, resonances[i], sampleRate)
	}

	t.ramping = true
}

func (t *lowpass) Process(ch int, buf []float64) {
	s := &t.sections[ch]
	if !t.ramping {
		s.Coefficients = t.coeffs
		s.ProcessBlock(buf)

		return
	}

	ramp := t.ramp[:len(buf)]
	for i, x := range buf {
		s.Coefficients = ramp[i]
		buf[i] = s.ProcessSample(x)
	}
}

func (t *lowpass) Reset() {
	for i := range t.sections {
		t.sections[i].Reset()
	}
}

func (t *lowpass) ResetChannel(ch int) { t.sections[ch].Reset() }

func (t *lowpass) Settle(ch int) bool { return t.sections[ch].Settle() }

func (t *lowpass) Response(freqHz, cutoffHz, resonanceDB, sampleRate float64) complex128 {
	c := design.ResonantLowpass(cutoffHz, resonanceDB, sampleRate)
	return c.Response(freqHz, sampleRate)
}
