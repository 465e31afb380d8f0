package kernel

// DefaultEventCapacity is the event queue size used without WithEventCapacity.
const DefaultEventCapacity = 64

type options struct {
	variant       Variant
	eventCapacity int
}

// Option configures a Kernel at construction.
type Option func(*options)

// WithVariant selects the filter topology.
func WithVariant(v Variant) Option {
	return func(o *options) {
		o.variant = v
	}
}

// WithEventCapacity sizes the event queue. Values <= 0 are ignored.
func WithEventCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.eventCapacity = n
		}
	}
}
