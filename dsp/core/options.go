package core

import (
	"math"
	"time"
)

// Configuration bounds accepted by Validate.
const (
	MinSampleRate = 8000.0
	MaxSampleRate = 768000.0
	MaxChannels   = 64
	MaxMaxFrames  = 16384
)

// RampPolicy selects how a parameter approaches a new target.
type RampPolicy int

const (
	// RampLinear moves by a constant step and lands on the target exactly
	// at the end of the ramp window.
	RampLinear RampPolicy = iota
	// RampExponential approaches the target with a one-pole curve whose
	// -60 dB time equals the ramp window, snapping at the window end.
	RampExponential
)

func (p RampPolicy) String() string {
	switch p {
	case RampLinear:
		return "linear"
	case RampExponential:
		return "exponential"
	default:
		return "unknown"
	}
}

// Config is the kernel configuration. It is immutable between an allocate
// and the matching deallocate of render resources.
type Config struct {
	SampleRate    float64
	Channels      int
	MaxFrames     int
	RampTime      time.Duration
	Policy        RampPolicy
	EventCapacity int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the configuration used before the host negotiates
// a format: 44.1 kHz stereo, 512 frames per cycle, 20 ms dezipper ramps.
func DefaultConfig() Config {
	return Config{
		SampleRate:    44100,
		Channels:      2,
		MaxFrames:     512,
		RampTime:      20 * time.Millisecond,
		Policy:        RampLinear,
		EventCapacity: 64,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		cfg.SampleRate = sampleRate
	}
}

// WithChannels sets the channel count.
func WithChannels(channels int) Option {
	return func(cfg *Config) {
		cfg.Channels = channels
	}
}

// WithMaxFrames sets the maximum frame count per render call.
func WithMaxFrames(maxFrames int) Option {
	return func(cfg *Config) {
		cfg.MaxFrames = maxFrames
	}
}

// WithRampTime sets the default parameter ramp duration. Negative values
// are ignored; zero disables dezippering.
func WithRampTime(d time.Duration) Option {
	return func(cfg *Config) {
		if d >= 0 {
			cfg.RampTime = d
		}
	}
}

// WithPolicy sets the ramp smoothing policy.
func WithPolicy(p RampPolicy) Option {
	return func(cfg *Config) {
		cfg.Policy = p
	}
}

// WithEventCapacity sets the number of events the queue can hold per cycle.
func WithEventCapacity(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.EventCapacity = n
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	if math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) ||
		c.SampleRate < MinSampleRate || c.SampleRate > MaxSampleRate {
		return &ConfigError{Field: "sample rate", Value: c.SampleRate, Reason: "must be finite and within [8000, 768000] Hz"}
	}

	if c.Channels < 1 || c.Channels > MaxChannels {
		return &ConfigError{Field: "channels", Value: float64(c.Channels), Reason: "must be within [1, 64]"}
	}

	if c.MaxFrames < 1 || c.MaxFrames > MaxMaxFrames {
		return &ConfigError{Field: "max frames", Value: float64(c.MaxFrames), Reason: "must be within [1, 16384]"}
	}

	if c.Policy != RampLinear && c.Policy != RampExponential {
		return &ConfigError{Field: "ramp policy", Value: float64(c.Policy), Reason: "unknown policy"}
	}

	if c.EventCapacity < 1 {
		return &ConfigError{Field: "event capacity", Value: float64(c.EventCapacity), Reason: "must be positive"}
	}

	return nil
}

// Nyquist returns half the sample rate.
func (c Config) Nyquist() float64 {
	return 0.5 * c.SampleRate
}

// RampFrames converts RampTime into a frame count at the configured rate.
func (c Config) RampFrames() int {
	if c.RampTime <= 0 || c.SampleRate <= 0 {
		return 0
	}

	return int(math.Round(c.RampTime.Seconds() * c.SampleRate))
}
