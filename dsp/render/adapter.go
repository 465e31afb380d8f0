package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-filterunit/dsp/buffer"
	"github.com/cwbudde/algo-filterunit/dsp/core"
	"github.com/cwbudde/algo-filterunit/dsp/event"
	"github.com/cwbudde/algo-filterunit/dsp/kernel"
	"github.com/cwbudde/algo-filterunit/dsp/param"
)

var (
	// ErrTooManyFrames is returned when a host asks for more frames than
	// MaximumFramesToRender.
	ErrTooManyFrames = errors.New("render: frame count exceeds maximum frames to render")
	// ErrAllocated is returned by format setters while render resources
	// are allocated.
	ErrAllocated = errors.New("render: render resources are allocated")
)

// Bus describes the format of an input or output bus.
type Bus struct {
	Channels   int
	SampleRate float64
}

// Adapter drives a kernel from a host render callback.
type Adapter struct {
	logger *slog.Logger
	kernel *kernel.Kernel
	base   core.Config

	input     Bus
	output    Bus
	maxFrames int
	allocated atomic.Bool

	// interleaved hosts are deinterleaved into this scratch
	planar *buffer.Planar

	rejected atomic.Uint64
	dropped  atomic.Uint64
}

// New returns an adapter with unallocated render resources. Bus formats
// and the frame budget start from core.DefaultConfig.
func New(opts ...Option) *Adapter {
	o := options{
		logger:  slog.Default(),
		variant: kernel.VariantLowpass,
		config:  core.DefaultConfig(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	bus := Bus{Channels: o.config.Channels, SampleRate: o.config.SampleRate}

	return &Adapter{
		logger: o.logger,
		kernel: kernel.New(
			kernel.WithVariant(o.variant),
			kernel.WithEventCapacity(o.config.EventCapacity),
		),
		base:      o.config,
		input:     bus,
		output:    bus,
		maxFrames: o.config.MaxFrames,
		planar:    buffer.NewPlanar(0, 0),
	}
}

// Variant returns the filter topology.
func (a *Adapter) Variant() kernel.Variant { return a.kernel.Variant() }

// InputBus returns the input bus format.
func (a *Adapter) InputBus() Bus { return a.input }

// OutputBus returns the output bus format.
func (a *Adapter) OutputBus() Bus { return a.output }

// MaximumFramesToRender returns the largest cycle the host may request.
func (a *Adapter) MaximumFramesToRender() int { return a.maxFrames }

// CanProcessInPlace reports that input and output buffers may alias.
func (a *Adapter) CanProcessInPlace() bool { return true }

// Allocated reports whether render resources are allocated.
func (a *Adapter) Allocated() bool { return a.allocated.Load() }

// SetBusFormat sets the input and output bus formats. Mismatched channel
// counts are accepted here and rejected by AllocateRenderResources.
func (a *Adapter) SetBusFormat(input, output Bus) error {
	if a.allocated.Load() {
		return ErrAllocated
	}

	a.input, a.output = input, output

	return nil
}

// SetMaximumFramesToRender sets the frame budget for the next allocation.
func (a *Adapter) SetMaximumFramesToRender(n int) error {
	if a.allocated.Load() {
		return ErrAllocated
	}

	a.maxFrames = n

	return nil
}

// AllocateRenderResources configures the kernel for channels at sampleRate
// with cycles of up to maxFrames frames. maxFrames <= 0 uses
// MaximumFramesToRender. Allocating again reallocates. Errors wrap a
// *core.ConfigError and leave the adapter unallocated.
func (a *Adapter) AllocateRenderResources(channels int, sampleRate float64, maxFrames int) error {
	a.DeallocateRenderResources()

	if a.input.Channels != a.output.Channels {
		err := &core.ConfigError{
			Field:  "bus format",
			Value:  float64(a.output.Channels),
			Reason: fmt.Sprintf("output channels differ from %d input channels", a.input.Channels),
		}
		a.logger.Warn("render resource allocation rejected", "error", err)

		return fmt.Errorf("render: allocate: %w", err)
	}

	if maxFrames <= 0 {
		maxFrames = a.maxFrames
	}

	cfg := a.base
	cfg.Channels = channels
	cfg.SampleRate = sampleRate
	cfg.MaxFrames = maxFrames

	if err := a.kernel.Configure(cfg); err != nil {
		a.logger.Warn("render resource allocation rejected", "error", err)
		return fmt.Errorf("render: allocate: %w", err)
	}

	a.planar.Resize(channels, maxFrames)

	bus := Bus{Channels: channels, SampleRate: sampleRate}
	a.input, a.output = bus, bus
	a.maxFrames = maxFrames
	a.allocated.Store(true)

	a.logger.Info("render resources allocated",
		"variant", a.kernel.Variant().String(),
		"channels", channels,
		"sample_rate", sampleRate,
		"max_frames", maxFrames,
		"ramp_frames", cfg.RampFrames(),
		"ramp_policy", cfg.Policy.String(),
	)

	return nil
}

// DeallocateRenderResources releases the render resources. It is a no-op
// when nothing is allocated.
func (a *Adapter) DeallocateRenderResources() {
	if !a.allocated.Swap(false) {
		return
	}

	a.kernel.Deconfigure()
	a.planar.Release()
	a.logger.Info("render resources deallocated")
}

// Reset clears the filter state and snaps parameters to their targets.
// It must not run concurrently with a render call.
func (a *Adapter) Reset() {
	a.kernel.Reset()
}

// Process renders frames frames from in to out. in and out may alias.
// hostEvents carry offsets relative to this cycle. On failure out is
// silenced.
func (a *Adapter) Process(in, out [][]float64, frames int, hostEvents []event.Event) error {
	v := buffer.View{In: in, Out: out, Frames: frames}

	if err := a.admit(frames, hostEvents); err != nil {
		v.Silence(min(frames, a.maxFrames))
		return err
	}

	return a.kernel.Process(v, a.kernel.DrainEvents(frames))
}

// ProcessInterleaved filters an interleaved float64 buffer in place. On
// failure the buffer is left untouched.
func (a *Adapter) ProcessInterleaved(buf *audio.FloatBuffer, hostEvents []event.Event) error {
	if buf == nil || buf.Format == nil {
		a.reject(hostEvents)
		return buffer.ErrShape
	}

	frames := buf.NumFrames()
	if err := a.admitInterleaved(buf.Format.NumChannels, frames, hostEvents); err != nil {
		return err
	}

	buffer.DeinterleaveFloat64(a.planar, buf.Data, frames)

	if err := a.kernel.Process(a.planar.InPlaceView(frames), a.kernel.DrainEvents(frames)); err != nil {
		return err
	}

	buffer.InterleaveFloat64(buf.Data, a.planar, frames)

	return nil
}

// ProcessInt filters an interleaved integer PCM buffer in place, using its
// SourceBitDepth for scaling. On failure the buffer is left untouched.
func (a *Adapter) ProcessInt(buf *audio.IntBuffer, hostEvents []event.Event) error {
	if buf == nil || buf.Format == nil {
		a.reject(hostEvents)
		return buffer.ErrShape
	}

	frames := buf.NumFrames()
	if err := a.admitInterleaved(buf.Format.NumChannels, frames, hostEvents); err != nil {
		return err
	}

	buffer.DeinterleaveInt(a.planar, buf.Data, frames, buf.SourceBitDepth)

	if err := a.kernel.Process(a.planar.InPlaceView(frames), a.kernel.DrainEvents(frames)); err != nil {
		return err
	}

	buffer.InterleaveInt(buf.Data, a.planar, frames, buf.SourceBitDepth)

	return nil
}

// admit checks the cycle against the allocation and queues hostEvents.
func (a *Adapter) admit(frames int, hostEvents []event.Event) error {
	switch {
	case !a.allocated.Load():
		a.reject(hostEvents)
		return core.ErrNotConfigured
	case frames > a.maxFrames:
		a.reject(hostEvents)
		return ErrTooManyFrames
	}

	q := a.kernel.Queue()
	for _, e := range hostEvents {
		q.Push(e)
	}

	return nil
}

func (a *Adapter) admitInterleaved(channels, frames int, hostEvents []event.Event) error {
	if a.allocated.Load() && channels != a.input.Channels {
		a.reject(hostEvents)
		return buffer.ErrShape
	}

	return a.admit(frames, hostEvents)
}

func (a *Adapter) reject(hostEvents []event.Event) {
	a.rejected.Add(1)
	if n := len(hostEvents); n > 0 {
		a.dropped.Add(uint64(n))
	}
}

// SetParameter publishes a new target for kind. Safe from any goroutine.
func (a *Adapter) SetParameter(kind param.Kind, v float64) bool {
	return a.kernel.Params().SetTarget(kind, v)
}

// Parameter returns the latest target of kind set through SetParameter or
// a preset.
func (a *Adapter) Parameter(kind param.Kind) float64 {
	return a.kernel.Params().Target(kind)
}

// RenderedParameter returns the value kind had reached at the end of the
// last rendered cycle, scheduled events included.
func (a *Adapter) RenderedParameter(kind param.Kind) float64 {
	return a.kernel.Params().Current(kind)
}

// ScheduleParameter queues a change of kind to v at offset frames into the
// next rendered cycle. Safe from any goroutine. It reports whether an older
// queued event had to be dropped to make room.
func (a *Adapter) ScheduleParameter(kind param.Kind, v float64, offset int) (dropped bool) {
	return a.kernel.Queue().Push(event.Parameter(kind, v, offset))
}

// SetBypassed toggles bypass. Safe from any goroutine.
func (a *Adapter) SetBypassed(b bool) { a.kernel.SetBypassed(b) }

// Bypassed reports the bypass state.
func (a *Adapter) Bypassed() bool { return a.kernel.Bypassed() }

// ApplyPreset publishes the values of the named factory preset.
func (a *Adapter) ApplyPreset(name string) error {
	p, err := param.PresetByName(name)
	if err != nil {
		return err
	}

	a.kernel.Params().ApplyPreset(p)
	a.logger.Debug("preset applied", "preset", p.Name, "number", p.Number)

	return nil
}

// MagnitudeResponse writes the linear magnitude at each of freqs into dst.
func (a *Adapter) MagnitudeResponse(freqs, dst []float64) error {
	return a.kernel.MagnitudeResponse(freqs, dst)
}

// ImpulseResponse renders n samples of the impulse response at the current
// targets without touching the render state.
func (a *Adapter) ImpulseResponse(n int) []float64 {
	return a.kernel.ImpulseResponse(n)
}

// Diagnostics returns the render counters, including cycles refused by the
// adapter before they reached the kernel.
func (a *Adapter) Diagnostics() kernel.Diagnostics {
	d := a.kernel.Diagnostics()
	d.RejectedCycles += a.rejected.Load()
	d.DroppedEvents += a.dropped.Load()

	return d
}

// LogDiagnostics writes the counters to the logger. Lossy counters raise
// the level to Warn.
func (a *Adapter) LogDiagnostics() {
	d := a.Diagnostics()

	level := slog.LevelInfo
	if d.RejectedCycles > 0 || d.DroppedEvents > 0 || d.QueueOverflows > 0 || d.StateResets > 0 {
		level = slog.LevelWarn
	}

	a.logger.LogAttrs(context.Background(), level, "render diagnostics",
		slog.Uint64("cycles", d.Cycles),
		slog.Uint64("frames", d.Frames),
		slog.Uint64("rejected_cycles", d.RejectedCycles),
		slog.Uint64("dropped_events", d.DroppedEvents),
		slog.Uint64("queue_overflows", d.QueueOverflows),
		slog.Uint64("non_finite_inputs", d.NonFiniteInputs),
		slog.Uint64("state_resets", d.StateResets),
	)
}
