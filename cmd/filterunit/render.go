package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-filterunit/dsp/event"
)

type renderFlags struct {
	filterFlags
	block  int
	bypass bool
	at     []string
}

func newRenderCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render IN.wav OUT.wav",
		Short: "Filter a WAV file",
		Long: "Filter a PCM WAV file block by block through the render adapter, " +
			"applying --at automation on the exact frame.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, logger(cmd), &f, args[0], args[1])
		},
	}

	f.register(cmd)
	cmd.Flags().IntVarP(&f.block, "block", "b", 512, "frames per render cycle")
	cmd.Flags().BoolVar(&f.bypass, "bypass", false, "bypass the filter")
	cmd.Flags().StringArrayVar(&f.at, "at", nil, "parameter automation FRAME:kind=value (repeatable)")

	return cmd
}

func runRender(cmd *cobra.Command, logger *slog.Logger, f *renderFlags, inPath, outPath string) error {
	if f.block < 1 {
		return fmt.Errorf("filterunit: --block must be positive, got %d", f.block)
	}

	points, err := parseAutomationList(f.at)
	if err != nil {
		return err
	}

	a, err := f.adapter(cmd, logger)
	if err != nil {
		return err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("filterunit: open input: %w", err)
	}
	defer in.Close()

	dec := wav.NewDecoder(in)
	if !dec.IsValidFile() {
		return fmt.Errorf("filterunit: %s is not a valid WAV file", inPath)
	}

	format := dec.Format()
	bitDepth := int(dec.BitDepth)
	channels := format.NumChannels

	if err := a.AllocateRenderResources(channels, float64(format.SampleRate), f.block); err != nil {
		return err
	}
	defer a.DeallocateRenderResources()

	a.SetBypassed(f.bypass)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("filterunit: create output: %w", err)
	}
	defer out.Close()

	enc := wav.NewEncoder(out, format.SampleRate, bitDepth, channels, 1)

	buf := &audio.IntBuffer{
		Format:         format,
		Data:           make([]int, f.block*channels),
		SourceBitDepth: bitDepth,
	}
	events := make([]event.Event, 0, len(points))

	var pos int64
	next := 0

	for {
		buf.Data = buf.Data[:cap(buf.Data)]

		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return fmt.Errorf("filterunit: decode at frame %d: %w", pos, err)
		}

		frames := n / channels
		if frames == 0 {
			break
		}

		buf.Data = buf.Data[:frames*channels]

		events, next = blockEvents(points, next, pos, frames, events[:0])
		for _, e := range events {
			logger.Debug("automation", "frame", pos+int64(e.Offset), "event", e.String())
		}

		if err := a.ProcessInt(buf, events); err != nil {
			return fmt.Errorf("filterunit: render at frame %d: %w", pos, err)
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("filterunit: encode: %w", err)
		}

		pos += int64(frames)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("filterunit: finish output: %w", err)
	}

	logger.Info("render complete",
		"input", inPath,
		"output", outPath,
		"frames", pos,
		"channels", channels,
		"sample_rate", format.SampleRate,
		"bit_depth", bitDepth,
		"automation_points", len(points),
	)
	a.LogDiagnostics()

	return nil
}
