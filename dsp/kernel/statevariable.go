package kernel

import (
	"github.com/cwbudde/algo-filterunit/dsp/filter/design"
	"github.com/cwbudde/algo-filterunit/dsp/filter/svf"
)

type stateVariable struct {
	states  []svf.State
	coeffs  svf.Coefficients
	ramp    []svf.Coefficients
	ramping bool
}

func (t *stateVariable) Name() string { return VariantSVF.String() }

func (t *stateVariable) Allocate(channels, maxFrames int) {
	t.states = make([]svf.State, channels)
	t.ramp = make([]svf.Coefficients, maxFrames)
	t.ramping = false
}

func (t *stateVariable) Tune(cutoffHz, resonanceDB, sampleRate float64) {
	t.coeffs = svf.NewCoefficients(cutoffHz, design.ResonanceQ(resonanceDB), sampleRate)
	t.ramping = false
}

func (t *stateVariable) TuneRamp(cutoffs, resonances []float64, sampleRate float64) {
	for i, fc := range cutoffs {
		t.ramp[i] = svf.NewCoefficients(fc, design.ResonanceQ(resonances[i]), sampleRate)
	}

	t.ramping = true
}

func (t *stateVariable) Process(ch int, buf []float64) {
	s := &t.states[ch]
	if !t.ramping {
		s.ProcessBlock(&t.coeffs, buf)
		return
	}

	ramp := t.ramp[:len(buf)]
	for i, x := range buf {
		buf[i] = s.ProcessSample(&ramp[i], x)
	}
}

func (t *stateVariable) Reset() {
	for i := range t.states {
		t.states[i].Reset()
	}
}

func (t *stateVariable) ResetChannel(ch int) { t.states[ch].Reset() }

func (t *stateVariable) Settle(ch int) bool { return t.states[ch].Settle() }

func (t *stateVariable) Response(freqHz, cutoffHz, resonanceDB, sampleRate float64) complex128 {
	c := svf.NewCoefficients(cutoffHz, design.ResonanceQ(resonanceDB), sampleRate)
	return c.Response(freqHz, sampleRate)
}
