package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-filterunit/dsp/core"
	"github.com/cwbudde/algo-filterunit/dsp/param"
	"github.com/cwbudde/algo-filterunit/dsp/render"
	"github.com/cwbudde/algo-filterunit/measure/response"
)

// impulseLength is the number of impulse response samples --measured
// analyses.
const impulseLength = 1 << 14

type responseFlags struct {
	filterFlags
	sampleRate float64
	points     int
	minFreq    float64
	maxFreq    float64
	measured   bool
	fftSize    int
}

func newResponseCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var f responseFlags

	cmd := &cobra.Command{
		Use:   "response",
		Short: "Print the magnitude response for the given parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResponse(cmd, logger(cmd), &f)
		},
	}

	f.register(cmd)
	cmd.Flags().Float64Var(&f.sampleRate, "sample-rate", 48000, "sample rate in Hz")
	cmd.Flags().IntVarP(&f.points, "points", "n", 16, "number of log-spaced frequencies")
	cmd.Flags().Float64Var(&f.minFreq, "min", 20, "lowest frequency in Hz")
	cmd.Flags().Float64Var(&f.maxFreq, "max", 20000, "highest frequency in Hz, limited to Nyquist")
	cmd.Flags().BoolVar(&f.measured, "measured", false, "add a column measured from the rendered impulse response")
	cmd.Flags().IntVar(&f.fftSize, "fft", 0, "FFT size for --measured (0 chooses)")

	return cmd
}

func runResponse(cmd *cobra.Command, logger *slog.Logger, f *responseFlags) error {
	if f.points < 2 {
		return fmt.Errorf("filterunit: --points must be at least 2, got %d", f.points)
	}

	maxFreq := math.Min(f.maxFreq, f.sampleRate/2)
	if !(f.minFreq > 0) || f.minFreq >= maxFreq {
		return fmt.Errorf("filterunit: need 0 < --min < %g Hz, got %g", maxFreq, f.minFreq)
	}

	a, err := f.adapter(cmd, logger)
	if err != nil {
		return err
	}

	if err := a.AllocateRenderResources(1, f.sampleRate, 0); err != nil {
		return err
	}
	defer a.DeallocateRenderResources()

	freqs := logSpaced(f.minFreq, maxFreq, f.points)
	mags := make([]float64, len(freqs))

	if err := a.MagnitudeResponse(freqs, mags); err != nil {
		return err
	}

	var measured []float64
	var metrics response.Metrics

	if f.measured {
		measured, metrics, err = measure(a, f.sampleRate, f.fftSize, freqs)
		if err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(w, "%s  cutoff %.1f Hz  resonance %.1f dB  sample rate %g Hz\n\n",
		a.Variant(), a.Parameter(param.Cutoff), a.Parameter(param.Resonance), f.sampleRate); err != nil {
		return err
	}

	if err := printResponse(w, freqs, mags, measured); err != nil {
		return err
	}

	if f.measured {
		_, err := fmt.Fprintf(w, "\nmeasured: DC %.2f dB, peak %.2f dB at %.1f Hz, -3 dB at %.1f Hz, ring %.2f ms\n",
			metrics.DCGainDB, metrics.PeakGainDB, metrics.PeakFreqHz, metrics.CutoffHz, metrics.RingTime*1000)

		return err
	}

	return nil
}

// measure analyses the adapter's impulse response and samples its spectrum
// at freqs using the nearest bin.
func measure(a *render.Adapter, sampleRate float64, fftSize int, freqs []float64) ([]float64, response.Metrics, error) {
	ir := a.ImpulseResponse(impulseLength)

	metrics, err := response.NewAnalyzer(sampleRate, fftSize).Analyze(ir)
	if err != nil {
		return nil, response.Metrics{}, err
	}

	binFreqs, binDB, err := response.Magnitudes(ir, sampleRate, fftSize)
	if err != nil {
		return nil, response.Metrics{}, err
	}

	step := binFreqs[1] - binFreqs[0]
	out := make([]float64, len(freqs))
	for i, fr := range freqs {
		bin := min(int(math.Round(fr/step)), len(binDB)-1)
		out[i] = binDB[bin]
	}

	return out, metrics, nil
}

func printResponse(w io.Writer, freqs, mags, measured []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := "Freq [Hz]\tGain [dB]\t"
	rule := "---------\t---------\t"
	if measured != nil {
		header += "Measured [dB]\t"
		rule += "-------------\t"
	}

	if _, err := fmt.Fprintln(tw, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(tw, rule); err != nil {
		return err
	}

	for i, fr := range freqs {
		row := fmt.Sprintf("%.1f\t%.2f\t", fr, core.LinearToDB(mags[i]))
		if measured != nil {
			row += fmt.Sprintf("%.2f\t", measured[i])
		}

		if _, err := fmt.Fprintln(tw, row); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// logSpaced returns n frequencies from lo to hi, evenly spaced on a log axis.
func logSpaced(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	out[n-1] = hi

	return out
}
