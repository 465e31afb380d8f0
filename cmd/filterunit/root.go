package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-filterunit/dsp/core"
	"github.com/cwbudde/algo-filterunit/dsp/kernel"
	"github.com/cwbudde/algo-filterunit/dsp/param"
	"github.com/cwbudde/algo-filterunit/dsp/render"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "filterunit",
		Short:         "Resonant low-pass filter unit",
		SilenceUsage:  true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	logger := func(cmd *cobra.Command) *slog.Logger {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	}

	root.AddCommand(
		newRenderCmd(logger),
		newResponseCmd(logger),
		newPresetsCmd(),
	)

	return root
}

// filterFlags are the parameter flags shared by render and response.
type filterFlags struct {
	cutoff    float64
	resonance float64
	variant   string
	preset    string
	ramp      time.Duration
	policy    string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cutoff := param.SpecOf(param.Cutoff)
	resonance := param.SpecOf(param.Resonance)

	cmd.Flags().Float64VarP(&f.cutoff, "cutoff", "c", cutoff.Default,
		fmt.Sprintf("cutoff frequency in Hz [%g, %g]", cutoff.Min, cutoff.Max))
	cmd.Flags().Float64VarP(&f.resonance, "resonance", "r", resonance.Default,
		fmt.Sprintf("resonance in dB [%g, %g]", resonance.Min, resonance.Max))
	cmd.Flags().StringVar(&f.variant, "variant", kernel.VariantLowpass.String(),
		"filter topology: "+strings.Join(variantNames(), ", "))
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "factory preset applied before --cutoff/--resonance")
	cmd.Flags().DurationVar(&f.ramp, "ramp", core.DefaultConfig().RampTime, "dezipper ramp time for parameter changes")
	cmd.Flags().StringVar(&f.policy, "policy", core.RampLinear.String(), "ramp curve: linear or exponential")
}

// adapter builds an adapter from the flags. Explicit --cutoff and
// --resonance override the preset.
func (f *filterFlags) adapter(cmd *cobra.Command, logger *slog.Logger) (*render.Adapter, error) {
	variant, err := kernel.ParseVariant(f.variant)
	if err != nil {
		return nil, err
	}

	policy, err := parsePolicy(f.policy)
	if err != nil {
		return nil, err
	}

	a := render.New(
		render.WithLogger(logger),
		render.WithVariant(variant),
		render.WithRampTime(f.ramp),
		render.WithPolicy(policy),
	)

	if f.preset != "" {
		if err := a.ApplyPreset(f.preset); err != nil {
			return nil, err
		}
	}

	if f.preset == "" || cmd.Flags().Changed("cutoff") {
		a.SetParameter(param.Cutoff, f.cutoff)
	}

	if f.preset == "" || cmd.Flags().Changed("resonance") {
		a.SetParameter(param.Resonance, f.resonance)
	}

	return a, nil
}

func variantNames() []string {
	vs := kernel.Variants()
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.String()
	}

	return names
}

func parsePolicy(name string) (core.RampPolicy, error) {
	for _, p := range []core.RampPolicy{core.RampLinear, core.RampExponential} {
		if strings.EqualFold(p.String(), name) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("filterunit: unknown ramp policy %q", name)
}
