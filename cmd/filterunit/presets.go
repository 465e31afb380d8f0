package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-filterunit/dsp/param"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the factory presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if _, err := fmt.Fprintln(tw, "#\tName\tCutoff [Hz]\tResonance [dB]"); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(tw, "-\t----\t-----------\t--------------"); err != nil {
				return err
			}

			for _, p := range param.Presets() {
				if _, err := fmt.Fprintf(tw, "%d\t%s\t%g\t%g\n",
					p.Number, p.Name, p.Values[param.Cutoff], p.Values[param.Resonance]); err != nil {
					return err
				}
			}

			return tw.Flush()
		},
	}
}
