package response

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-filterunit/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterunit/dsp/filter/design"
	"github.com/cwbudde/algo-filterunit/internal/testutil"
)

func impulseResponse(c biquad.Coefficients, n int) []float64 {
	ir := make([]float64, n)
	biquad.NewSection(c).ImpulseResponse(ir)

	return ir
}

// makeExponentialDecay generates an IR whose amplitude falls 60 dB in rt60.
func makeExponentialDecay(sampleRate, rt60, durationSec float64) []float64 {
	ir := make([]float64, int(sampleRate*durationSec))
	decayRate := 6.9078 / rt60 // ln(10^3) / RT60
	for i := range ir {
		ir[i] = math.Exp(-decayRate * float64(i) / sampleRate)
	}

	return ir
}

func TestAnalyzeButterworth(t *testing.T) {
	const sr = 48000

	ir := impulseResponse(design.Lowpass(1000, design.ButterworthQ, sr), 8192)

	m, err := NewAnalyzer(sr, 0).Analyze(ir)
	require.NoError(t, err)

	assert.InDelta(t, 0, m.DCGainDB, 1e-6)
	assert.InDelta(t, 0, m.PeakGainDB, 1e-6)
	assert.InDelta(t, 0, m.PeakFreqHz, 1)
	// Butterworth sits exactly at half power on its corner frequency.
	assert.InDelta(t, 1000, m.CutoffHz, 0.1)
	assert.Greater(t, m.Energy, 0.0)
	assert.Greater(t, m.RingTime, 0.0)
}

func TestAnalyzeResonantPeak(t *testing.T) {
	const sr = 48000

	ir := impulseResponse(design.ResonantLowpass(1000, 12, sr), 8192)

	m, err := NewAnalyzer(sr, 0).Analyze(ir)
	require.NoError(t, err)

	assert.InDelta(t, 0, m.DCGainDB, 1e-6)
	assert.InDelta(t, 12.05, m.PeakGainDB, 0.15)
	assert.Greater(t, m.PeakFreqHz, 960.0)
	assert.LessOrEqual(t, m.PeakFreqHz, 1000.0)
	assert.Greater(t, m.CutoffHz, m.PeakFreqHz)
}

func TestResonanceRingsLonger(t *testing.T) {
	const sr = 48000

	a := NewAnalyzer(sr, 0)

	flat, err := a.Analyze(impulseResponse(design.ResonantLowpass(1000, 0, sr), 16384))
	require.NoError(t, err)

	sharp, err := a.Analyze(impulseResponse(design.ResonantLowpass(1000, 18, sr), 16384))
	require.NoError(t, err)

	assert.Greater(t, sharp.RingTime, 3*flat.RingTime)
	assert.Greater(t, sharp.Energy, flat.Energy)
}

func TestRingTimeOfExponentialDecay(t *testing.T) {
	const sr = 48000

	m, err := NewAnalyzer(sr, 0).Analyze(makeExponentialDecay(sr, 0.1, 0.3))
	require.NoError(t, err)

	assert.InDelta(t, 0.1, m.RingTime, 1e-3)
	assert.Equal(t, 0, m.PeakIndex)
}

func TestSchroederIntegral(t *testing.T) {
	a := NewAnalyzer(48000, 0)

	s, err := a.SchroederIntegral([]float64{1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, floorDB, floorDB}, s)

	s, err = a.SchroederIntegral(make([]float64, 4))
	require.NoError(t, err)
	assert.Equal(t, []float64{floorDB, floorDB, floorDB, floorDB}, s)

	_, err = a.SchroederIntegral(nil)
	assert.ErrorIs(t, err, ErrEmptyIR)
}

func TestMagnitudes(t *testing.T) {
	freqs, mags, err := Magnitudes(testutil.Impulse(16, 0), 48000, 1024)
	require.NoError(t, err)

	require.Len(t, freqs, 513)
	require.Len(t, mags, 513)
	assert.Equal(t, 0.0, freqs[0])
	assert.InDelta(t, 24000, freqs[512], 1e-9)

	for i, db := range mags {
		require.InDelta(t, 0, db, 1e-9, "bin %d", i)
	}

	freqs, _, err = Magnitudes(make([]float64, DefaultFFTSize+10), 48000, 0)
	require.NoError(t, err)
	assert.Len(t, freqs, DefaultFFTSize+1)
}

func TestMagnitudesTwoTapAverage(t *testing.T) {
	const sr = 8000

	// |H(f)| = |cos(pi*f/sr)| for y[n] = (x[n] + x[n-1]) / 2.
	freqs, mags, err := Magnitudes([]float64{0.5, 0.5}, sr, 256)
	require.NoError(t, err)

	for i, f := range freqs[:len(freqs)-1] {
		want := 20 * math.Log10(math.Abs(math.Cos(math.Pi*f/sr)))
		require.InDelta(t, want, mags[i], 1e-9, "bin %d", i)
	}

	assert.LessOrEqual(t, mags[len(mags)-1], float64(floorDB))
}

func TestEnergyAndPeakIndex(t *testing.T) {
	m, err := NewAnalyzer(8000, 64).Analyze([]float64{0, 3, -4})
	require.NoError(t, err)

	assert.InDelta(t, 25, m.Energy, 1e-12)
	assert.Equal(t, 2, m.PeakIndex)
	assert.InDelta(t, 0, m.DCGainDB, 1e-12)
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name    string
		ir      []float64
		sr      float64
		fftSize int
		want    error
	}{
		{"empty", nil, 48000, 0, ErrEmptyIR},
		{"zero sample rate", []float64{1}, 0, 0, ErrInvalidSampleRate},
		{"nan sample rate", []float64{1}, math.NaN(), 0, ErrInvalidSampleRate},
		{"infinite sample rate", []float64{1}, math.Inf(1), 0, ErrInvalidSampleRate},
		{"negative fft size", []float64{1}, 48000, -8, ErrInvalidFFTSize},
		{"fft shorter than ir", make([]float64, 100), 48000, 64, ErrInvalidFFTSize},
		{"fft not a power of two", make([]float64, 100), 48000, 1000, ErrInvalidFFTSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnalyzer(tt.sr, tt.fftSize).Analyze(tt.ir)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
