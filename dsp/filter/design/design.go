package design

import (
	"math"

	"github.com/cwbudde/algo-filterunit/dsp/core"
	"github.com/cwbudde/algo-filterunit/dsp/filter/biquad"
)

// ButterworthQ is the quality factor of a maximally flat second-order section.
const ButterworthQ = 1 / math.Sqrt2

// NyquistMargin is the fraction of Nyquist that cutoffs are clamped to.
// Above it the bilinear warp pushes the poles onto the unit circle.
const NyquistMargin = 0.99

// ResonanceQ converts resonance in dB to the section's quality factor.
func ResonanceQ(resonanceDB float64) float64 {
	return core.DBToLinear(resonanceDB)
}

// ClampCutoff limits cutoffHz to [minHz, NyquistMargin*sampleRate/2].
// NaN maps to the upper bound, the transparent setting of a low-pass.
func ClampCutoff(cutoffHz, minHz, sampleRate float64) float64 {
	hi := NyquistMargin * sampleRate / 2
	lo := math.Min(math.Max(minHz, math.SmallestNonzeroFloat64), hi)

	switch {
	case math.IsNaN(cutoffHz):
		return hi
	case cutoffHz < lo:
		return lo
	case cutoffHz > hi:
		return hi
	default:
		return cutoffHz
	}
}

// ResonantLowpass designs the resonant 12 dB/oct low-pass. resonanceDB sets
// the damping r = 10^(-resonanceDB/20); positive values emphasize the
// cutoff. DC gain is always unity. The cutoff must already be clamped.
func ResonantLowpass(cutoffHz, resonanceDB, sampleRate float64) biquad.Coefficients {
	w, ok := normalizedW0(cutoffHz, sampleRate)
	if !ok {
		return passthrough()
	}

	r := core.DBToLinear(-resonanceDB)
	k := 0.5 * r * math.Sin(w)

	c1 := (1 - k) / (1 + k)
	c2 := (1 + c1) * math.Cos(w)
	c3 := (1 + c1 - c2) * 0.25

	return biquad.Coefficients{
		B0: c3,
		B1: 2 * c3,
		B2: c3,
		A1: -c2,
		A2: c1,
	}
}

// Lowpass designs an RBJ low-pass at freq (Hz) with quality factor q.
// Non-positive or non-finite q falls back to ButterworthQ.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return passthrough()
	}

	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		q = ButterworthQ
	}

	cw := math.Cos(w)
	alpha := math.Sin(w) / (2 * q)

	return normalizeBiquad((1-cw)/2, 1-cw, (1-cw)/2, 1+alpha, -2*cw, 1-alpha)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func passthrough() biquad.Coefficients {
	return biquad.Coefficients{B0: 1}
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return passthrough()
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
