// Package testutil provides deterministic test signals and tolerance checks
// shared by the filter unit's tests.
package testutil

import (
	"math"
	"math/rand/v2"
)

// Sine returns n samples of a sine at freqHz starting at phase zero.
func Sine(freqHz, sampleRate, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	w := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}

	return out
}

// Noise returns n samples of uniform white noise in [-amplitude, amplitude).
// Equal seeds give equal sequences.
func Noise(seed int64, amplitude float64, n int) []float64 {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))

	out := make([]float64, n)
	for i := range out {
		out[i] = (2*rng.Float64() - 1) * amplitude
	}

	return out
}

// Impulse returns n samples with a unit impulse at pos. An out-of-range pos
// gives silence.
func Impulse(n, pos int) []float64 {
	out := make([]float64, n)
	if pos >= 0 && pos < n {
		out[pos] = 1
	}

	return out
}

// Ones returns n samples of unit DC.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}

// Alternating returns a square at the Nyquist rate: +amplitude on even
// samples, -amplitude on odd ones.
func Alternating(amplitude float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude
		if i%2 == 1 {
			out[i] = -amplitude
		}
	}

	return out
}

// RMS returns the root mean square of data, 0 for an empty slice.
func RMS[T ~int | ~float64](data []T) float64 {
	if len(data) == 0 {
		return 0
	}

	var sum float64
	for _, x := range data {
		sum += float64(x) * float64(x)
	}

	return math.Sqrt(sum / float64(len(data)))
}
