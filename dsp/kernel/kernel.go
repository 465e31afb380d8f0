package kernel

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-filterunit/dsp/buffer"
	"github.com/cwbudde/algo-filterunit/dsp/core"
	"github.com/cwbudde/algo-filterunit/dsp/event"
	"github.com/cwbudde/algo-filterunit/dsp/filter/design"
	"github.com/cwbudde/algo-filterunit/dsp/param"
)

// Kernel hosts one filter topology for a configured channel count.
type Kernel struct {
	variant Variant
	topo    Topology
	store   *param.Store
	queue   *event.Queue

	cfg        core.Config
	configured bool
	minCutoff  float64

	// render-plane scratch, sized by Configure
	pending   []event.Event
	batch     event.Batch
	cutoffs   []float64
	resonance []float64
	work      [][]float64
	scratch   *buffer.Planar

	tuned       bool
	tunedCutoff float64
	tunedRes    float64

	bypassed atomic.Bool
	counters counters
}

// New returns an unconfigured kernel. Parameters start at their defaults.
func New(opts ...Option) *Kernel {
	o := options{variant: VariantLowpass, eventCapacity: DefaultEventCapacity}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return &Kernel{
		variant:   o.variant,
		topo:      NewTopology(o.variant),
		store:     param.NewStore(),
		queue:     event.NewQueue(o.eventCapacity),
		cfg:       core.DefaultConfig(),
		minCutoff: param.SpecOf(param.Cutoff).Min,
		scratch:   buffer.NewPlanar(0, 0),
	}
}

// Variant returns the topology variant.
func (k *Kernel) Variant() Variant { return k.variant }

// Params returns the parameter store. Its control-plane methods may be used
// from any goroutine.
func (k *Kernel) Params() *param.Store { return k.store }

// Queue returns the event queue. Push may be called from any goroutine.
func (k *Kernel) Queue() *event.Queue { return k.queue }

// Config returns the active configuration, or the defaults when the kernel
// is not configured.
func (k *Kernel) Config() core.Config { return k.cfg }

// Configured reports whether Configure succeeded and Deconfigure has not
// been called since.
func (k *Kernel) Configured() bool { return k.configured }

// Configure validates cfg and sizes every render-plane resource for it.
// Filter state is cleared and parameters snap to their targets. On error
// the kernel is left unconfigured.
func (k *Kernel) Configure(cfg core.Config) error {
	if err := cfg.Validate(); err != nil {
		k.Deconfigure()
		return err
	}

	k.cfg = cfg
	k.topo.Allocate(cfg.Channels, cfg.MaxFrames)
	k.store.Configure(cfg.RampFrames(), cfg.Policy)

	k.pending = make([]event.Event, k.queue.Cap())
	k.cutoffs = make([]float64, cfg.MaxFrames)
	k.resonance = make([]float64, cfg.MaxFrames)
	k.work = make([][]float64, cfg.Channels)
	k.scratch.Resize(cfg.Channels, cfg.MaxFrames)
	k.queue.Clear()

	k.configured = true
	k.Reset()

	return nil
}

// Deconfigure releases the render resources. Process fails with
// core.ErrNotConfigured until the next Configure.
func (k *Kernel) Deconfigure() {
	k.configured = false
	k.topo = NewTopology(k.variant)
	k.pending = nil
	k.batch = event.Batch{}
	k.cutoffs = nil
	k.resonance = nil
	k.work = nil
	k.scratch.Release()
	k.cfg = core.DefaultConfig()
}

// Reset clears the filter memory to silence and snaps parameters to their
// targets, as on a stream restart.
func (k *Kernel) Reset() {
	if k.configured {
		k.topo.Reset()
	}

	k.store.Reset()
	k.tuned = false
}

// SetBypassed toggles bypass. Safe from any goroutine.
func (k *Kernel) SetBypassed(b bool) { k.bypassed.Store(b) }

// Bypassed reports the bypass state.
func (k *Kernel) Bypassed() bool { return k.bypassed.Load() }

// Diagnostics returns the render-plane counters. Safe from any goroutine.
func (k *Kernel) Diagnostics() Diagnostics {
	q := k.queue.Counters()

	return Diagnostics{
		Cycles:          k.counters.cycles.Load(),
		Frames:          k.counters.frames.Load(),
		RejectedCycles:  k.counters.rejected.Load(),
		DroppedEvents:   k.counters.dropped.Load() + q.Malformed,
		QueueOverflows:  q.Overflows,
		NonFiniteInputs: k.counters.nonFiniteInputs.Load(),
		StateResets:     k.counters.stateResets.Load(),
	}
}

// DrainEvents moves the queued events for a cycle of frames frames into
// the kernel's batch and returns it. Render plane only.
func (k *Kernel) DrainEvents(frames int) *event.Batch {
	if !k.configured {
		return nil
	}

	k.batch = k.queue.Drain(frames, k.pending)

	return &k.batch
}

// Process renders one cycle. events may be nil. Each event takes effect
// before the frame at its offset; malformed events are dropped and counted.
//
// It returns core.ErrNotConfigured before Configure and buffer.ErrShape
// when v does not fit the configuration. In both cases whatever output
// memory is reachable is silenced.
func (k *Kernel) Process(v buffer.View, events *event.Batch) error {
	if !k.configured {
		k.reject(events)
		v.Silence(v.Frames)

		return core.ErrNotConfigured
	}

	if err := v.Validate(k.cfg.Channels, k.cfg.MaxFrames); err != nil {
		k.reject(events)
		v.Silence(min(v.Frames, k.cfg.MaxFrames))

		return err
	}

	frames := v.Frames
	bypass := k.bypassed.Load()

	k.counters.cycles.Add(1)
	k.counters.frames.Add(uint64(frames))
	k.store.Sync()

	// The filter always runs, on scratch memory while bypassed, so that
	// leaving bypass picks up warm state.
	var nonFinite uint64
	for c := range k.cfg.Channels {
		in, work := v.Span(c, 0, frames)
		if bypass {
			work = k.scratch.Channel(c)[:frames]
		}

		nonFinite += copyFinite(work, in)
		k.work[c] = work
	}

	pos := 0
	for pos < frames {
		for {
			off, ok := events.PeekOffset()
			if !ok || off > pos {
				break
			}

			e, _ := events.Next()
			k.apply(e, frames)
		}

		end := frames
		if off, ok := events.PeekOffset(); ok && off < end {
			end = off
		}

		k.render(pos, end)
		pos = end
	}

	// Whatever is left could not be placed inside this cycle.
	k.discard(events)

	for c := range k.cfg.Channels {
		if !k.topo.Settle(c) {
			k.counters.stateResets.Add(1)
		}

		if bypass {
			in, out := v.Span(c, 0, frames)
			buffer.CopyInto(out, in)
		}
	}

	if nonFinite > 0 {
		k.counters.nonFiniteInputs.Add(nonFinite)
	}

	k.store.Publish()

	return nil
}

// reject counts a refused cycle and the events it carried.
func (k *Kernel) reject(events *event.Batch) {
	k.counters.rejected.Add(1)
	k.discard(events)
}

// discard consumes the unread events of a batch and counts them as dropped.
func (k *Kernel) discard(events *event.Batch) {
	if n := events.Remaining(); n > 0 {
		k.counters.dropped.Add(uint64(n))
		for _, ok := events.Next(); ok; _, ok = events.Next() {
		}
	}
}

func (k *Kernel) apply(e event.Event, frames int) {
	if !e.Valid(frames) {
		k.counters.dropped.Add(1)
		return
	}

	switch e.Type {
	case event.TypeParameter:
		k.store.BeginRampToward(e.Kind, e.Value, k.store.RampFrames())
	case event.TypeParameterRamp:
		k.store.BeginRampToward(e.Kind, e.Value, e.RampFrames)
	case event.TypeReset:
		k.topo.Reset()
	}
}

// render filters frames [from, to) of every channel's work buffer. Frames
// that fall inside a running ramp get per-frame coefficients; the rest of
// the span shares one tuning.
func (k *Kernel) render(from, to int) {
	sr := k.cfg.SampleRate

	if n := min(to-from, k.store.RampRemaining()); n > 0 {
		for i := range n {
			k.store.Step()
			k.cutoffs[i] = design.ClampCutoff(k.store.CurrentValue(param.Cutoff), k.minCutoff, sr)
			k.resonance[i] = k.store.CurrentValue(param.Resonance)
		}

		k.topo.TuneRamp(k.cutoffs[:n], k.resonance[:n], sr)
		k.tuned = false
		k.filter(from, from+n)

		from += n
	}

	if from == to {
		return
	}

	fc := design.ClampCutoff(k.store.CurrentValue(param.Cutoff), k.minCutoff, sr)
	res := k.store.CurrentValue(param.Resonance)

	if !k.tuned || fc != k.tunedCutoff || res != k.tunedRes {
		k.topo.Tune(fc, res, sr)
		k.tuned, k.tunedCutoff, k.tunedRes = true, fc, res
	}

	k.filter(from, to)
}

func (k *Kernel) filter(from, to int) {
	for c := range k.cfg.Channels {
		buf := k.work[c][from:to]
		k.topo.Process(c, buf)
		core.SanitizeBlock(buf)
	}
}

// copyFinite copies src into dst, replacing NaN and ±Inf with zero, and
// returns how many samples were replaced.
func copyFinite(dst, src []float64) uint64 {
	var n uint64
	for i, x := range src {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			x = 0
			n++
		}
		dst[i] = x
	}

	return n
}
