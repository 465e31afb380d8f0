package kernel

import (
	"github.com/cwbudde/algo-filterunit/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterunit/dsp/filter/design"
)

// lowpass24 cascades the resonant section with a flat Butterworth section
// at the same cutoff. Only the first section carries the resonance.
type lowpass24 struct {
	chains   []*biquad.Chain
	resonant biquad.Coefficients
	flat     biquad.Coefficients
	ramp     [][2]biquad.Coefficients
	ramping  bool
}

func (t *lowpass24) Name() string { return VariantLowpass24.String() }

func (t *lowpass24) Allocate(channels, maxFrames int) {
	t.chains = make([]*biquad.Chain, channels)
	for i := range t.chains {
		t.chains[i] = biquad.NewChain(biquad.Coefficients{B0: 1}, biquad.Coefficients{B0: 1})
	}

	t.ramp = make([][2]biquad.Coefficients, maxFrames)
	t.ramping = false

	biquad.Prime()
}

func (t *lowpass24) Tune(cutoffHz, resonanceDB, sampleRate float64) {
	t.resonant, t.flat = lowpass24Coefficients(cutoffHz, resonanceDB, sampleRate)
	t.ramping = false
}

func (t *lowpass24) TuneRamp(cutoffs, resonances []float64, sampleRate float64) {
	for i, fc := range cutoffs {
		t.ramp[i][0], t.ramp[i][1] = lowpass24Coefficients(fc, resonances[i], sampleRate)
	}

	t.ramping = true
}

func (t *lowpass24) Process(ch int, buf []float64) {
	chain := t.chains[ch]
	if !t.ramping {
		chain.SetCoefficients(0, t.resonant)
		chain.SetCoefficients(1, t.flat)
		chain.ProcessBlock(buf)

		return
	}

	first, second := chain.Section(0), chain.Section(1)
	ramp := t.ramp[:len(buf)]
	for i, x := range buf {
		first.Coefficients = ramp[i][0]
		second.Coefficients = ramp[i][1]
		buf[i] = second.ProcessSample(first.ProcessSample(x))
	}
}

func (t *lowpass24) Reset() {
	for _, c := range t.chains {
		c.Reset()
	}
}

func (t *lowpass24) ResetChannel(ch int) { t.chains[ch].Reset() }

func (t *lowpass24) Settle(ch int) bool { return t.chains[ch].Settle() }

func (t *lowpass24) Response(freqHz, cutoffHz, resonanceDB, sampleRate float64) complex128 {
	a, b := lowpass24Coefficients(cutoffHz, resonanceDB, sampleRate)
	return a.Response(freqHz, sampleRate) * b.Response(freqHz, sampleRate)
}

func lowpass24Coefficients(cutoffHz, resonanceDB, sampleRate float64) (resonant, flat biquad.Coefficients) {
	return design.ResonantLowpass(cutoffHz, resonanceDB, sampleRate),
		design.Lowpass(cutoffHz, design.ButterworthQ, sampleRate)
}
