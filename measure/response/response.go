package response

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/tphakala/simd/f64"
)

// Errors returned by response analysis functions.
var (
	ErrEmptyIR           = errors.New("response: impulse response is empty")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive and finite")
	ErrInvalidFFTSize    = errors.New("response: invalid FFT size")
)

// DefaultFFTSize is used when an Analyzer has no FFT size and the impulse
// response fits. Longer responses use the next power of two.
const DefaultFFTSize = 1 << 16

// floorDB is reported for bins and levels with no energy.
const floorDB = -200

// halfPowerDB is the level of the half-power point, 10*log10(0.5).
var halfPowerDB = 10 * math.Log10(0.5)

// Metrics holds the results of an impulse response analysis.
type Metrics struct {
	DCGainDB   float64 // gain at 0 Hz
	PeakGainDB float64 // largest gain over the spectrum
	PeakFreqHz float64 // frequency of PeakGainDB
	CutoffHz   float64 // first half-power (-3.01 dB) crossing relative to DC, 0 if none
	Energy     float64 // sum of squared taps
	RingTime   float64 // seconds until the backward energy integral falls 60 dB, 0 if it never does
	PeakIndex  int     // sample index of the absolute maximum
}

// Analyzer computes response metrics from impulse response data.
type Analyzer struct {
	SampleRate float64
	// FFTSize is the transform length. Zero picks DefaultFFTSize or the next
	// power of two above the impulse response length.
	FFTSize int
}

// NewAnalyzer creates an analyzer for the given sample rate and FFT size.
func NewAnalyzer(sampleRate float64, fftSize int) *Analyzer {
	return &Analyzer{SampleRate: sampleRate, FFTSize: fftSize}
}

// Analyze computes every metric of ir.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	freqs, magsDB, err := Magnitudes(ir, a.SampleRate, a.FFTSize)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{
		DCGainDB:  toDB(math.Abs(f64.Sum(ir))),
		Energy:    f64.DotProduct(ir, ir),
		PeakIndex: findPeak(ir),
	}

	peak := 0
	for i, db := range magsDB {
		if db > magsDB[peak] {
			peak = i
		}
	}

	m.PeakGainDB = magsDB[peak]
	m.PeakFreqHz = freqs[peak]
	m.CutoffHz = cutoff(freqs, magsDB, m.DCGainDB+halfPowerDB)
	m.RingTime = a.ringTime(schroederIntegral(ir), -60)

	return m, nil
}

// SchroederIntegral computes the Schroeder backward integration of the
// squared impulse response, returned in dB relative to the total energy.
//
// S(t) = 10*log10( ∫_t^∞ h²(τ) dτ / ∫_0^∞ h²(τ) dτ )
func (a *Analyzer) SchroederIntegral(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return schroederIntegral(ir), nil
}

// Magnitudes returns the bin frequencies and magnitudes in dB of ir
// zero-padded to fftSize, which must be a power of two. fftSize 0 picks a
// size as Analyzer does.
func Magnitudes(ir []float64, sampleRate float64, fftSize int) (freqs, magsDB []float64, err error) {
	if len(ir) == 0 {
		return nil, nil, ErrEmptyIR
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, nil, ErrInvalidSampleRate
	}

	n, err := resolveFFTSize(fftSize, len(ir))
	if err != nil {
		return nil, nil, err
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, nil, fmt.Errorf("response: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, x := range ir {
		in[i] = complex(x, 0)
	}

	spectrum := make([]complex128, n)
	if err := plan.Forward(spectrum, in); err != nil {
		return nil, nil, fmt.Errorf("response: fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i, c := range spectrum[:bins] {
		re[i], im[i] = real(c), imag(c)
	}

	magsDB = make([]float64, bins)
	vecmath.Magnitude(magsDB, re, im)

	freqs = make([]float64, bins)
	for i := range freqs {
		freqs[i] = float64(i) * sampleRate / float64(n)
		magsDB[i] = toDB(magsDB[i])
	}

	return freqs, magsDB, nil
}

func resolveFFTSize(fftSize, irLen int) (int, error) {
	switch {
	case fftSize < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	case fftSize == 0:
		if irLen <= DefaultFFTSize {
			return DefaultFFTSize, nil
		}

		return 1 << bits.Len(uint(irLen-1)), nil
	case fftSize < 2 || fftSize < irLen:
		return 0, fmt.Errorf("%w: %d for impulse response of %d samples", ErrInvalidFFTSize, fftSize, irLen)
	case fftSize&(fftSize-1) != 0:
		return 0, fmt.Errorf("%w: %d is not a power of two", ErrInvalidFFTSize, fftSize)
	default:
		return fftSize, nil
	}
}

// cutoff returns the frequency where magsDB first drops below level,
// interpolated linearly between the neighbouring bins.
func cutoff(freqs, magsDB []float64, level float64) float64 {
	for i := 1; i < len(magsDB); i++ {
		if magsDB[i] >= level {
			continue
		}

		prev, cur := magsDB[i-1], magsDB[i]
		if prev == cur {
			return freqs[i]
		}

		t := (prev - level) / (prev - cur)

		return freqs[i-1] + t*(freqs[i]-freqs[i-1])
	}

	return 0
}

// schroederIntegral computes the Schroeder integral (unchecked).
func schroederIntegral(ir []float64) []float64 {
	n := len(ir)
	result := make([]float64, n)

	var cumSum float64
	for i := n - 1; i >= 0; i-- {
		cumSum += ir[i] * ir[i]
		result[i] = cumSum
	}

	totalEnergy := result[0]
	if totalEnergy <= 0 {
		for i := range result {
			result[i] = floorDB
		}

		return result
	}

	for i := range result {
		ratio := result[i] / totalEnergy
		if ratio <= 0 {
			result[i] = floorDB
		} else {
			result[i] = 10 * math.Log10(ratio)
		}
	}

	return result
}

// ringTime returns the time at which the Schroeder curve first reaches
// levelDB, interpolated between samples.
func (a *Analyzer) ringTime(schroeder []float64, levelDB float64) float64 {
	for i := 1; i < len(schroeder); i++ {
		if schroeder[i] > levelDB {
			continue
		}

		prev, cur := schroeder[i-1], schroeder[i]

		pos := float64(i)
		if prev != cur && cur > floorDB {
			pos = float64(i-1) + (prev-levelDB)/(prev-cur)
		}

		return pos / a.SampleRate
	}

	return 0
}

// findPeak returns the index of the absolute maximum in the IR.
func findPeak(ir []float64) int {
	peakIdx := 0
	peakVal := 0.0

	for i, v := range ir {
		av := math.Abs(v)
		if av > peakVal {
			peakVal = av
			peakIdx = i
		}
	}

	return peakIdx
}

func toDB(linear float64) float64 {
	if linear <= 0 {
		return floorDB
	}

	return 20 * math.Log10(linear)
}
