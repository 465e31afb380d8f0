// Package response measures the frequency and decay behaviour of a filter
// from its impulse response.
//
// An [Analyzer] zero-pads the impulse response to the FFT size, takes its
// spectrum and derives:
//
//   - DC gain and spectral peak (gain and frequency)
//   - Cutoff: the first -3 dB crossing relative to the DC gain
//   - Energy: the sum of squared taps
//   - Ring time: where the Schroeder backward integral reaches -60 dB
//
// # Usage
//
//	analyzer := response.NewAnalyzer(48000, 0) // FFT size chosen from the IR
//	metrics, err := analyzer.Analyze(impulseResponse)
//	fmt.Printf("fc = %.1f Hz, peak = %.1f dB\n", metrics.CutoffHz, metrics.PeakGainDB)
package response
