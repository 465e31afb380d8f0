package render

import (
	"log/slog"
	"time"

	"github.com/cwbudde/algo-filterunit/dsp/core"
	"github.com/cwbudde/algo-filterunit/dsp/kernel"
)

type options struct {
	logger  *slog.Logger
	variant kernel.Variant
	config  core.Config
}

// Option configures an Adapter at construction.
type Option func(*options)

// WithLogger sets the control-plane logger. nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithVariant selects the filter topology.
func WithVariant(v kernel.Variant) Option {
	return func(o *options) {
		o.variant = v
	}
}

// WithEventCapacity sizes the event queue.
func WithEventCapacity(n int) Option {
	return func(o *options) {
		core.WithEventCapacity(n)(&o.config)
	}
}

// WithRampTime sets the dezipper ramp duration used for parameter changes.
func WithRampTime(d time.Duration) Option {
	return func(o *options) {
		core.WithRampTime(d)(&o.config)
	}
}

// WithPolicy sets the ramp smoothing policy.
func WithPolicy(p core.RampPolicy) Option {
	return func(o *options) {
		core.WithPolicy(p)(&o.config)
	}
}
