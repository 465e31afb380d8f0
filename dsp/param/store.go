package param

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-filterunit/dsp/core"
)

// Store holds the target and smoothed value of every parameter.
//
// SetTarget, Target, Current and ApplyPreset belong to the control plane and
// may be called from any goroutine at any time. Every other method belongs to
// the render plane and must only be called from the goroutine that renders.
type Store struct {
	target    [Count]atomic.Uint64 // float64 bits
	gen       [Count]atomic.Uint64
	published [Count]atomic.Uint64 // float64 bits

	seen       [Count]uint64
	ramps      [Count]Ramp
	rampFrames int
}

// NewStore returns a store holding every parameter at its default.
func NewStore() *Store {
	s := &Store{}
	for k := range Count {
		d := specs[k].Default
		s.target[k].Store(math.Float64bits(d))
		s.published[k].Store(math.Float64bits(d))
		s.ramps[k].Set(d)
	}

	return s
}

// SetTarget publishes a new target for k, clamped to its range. It never
// blocks. Unknown kinds are ignored and reported as false.
func (s *Store) SetTarget(k Kind, v float64) bool {
	if !k.Valid() {
		return false
	}

	s.target[k].Store(math.Float64bits(specs[k].Clamp(v)))
	s.gen[k].Add(1)

	return true
}

// Target returns the last published target of k.
func (s *Store) Target(k Kind) float64 {
	if !k.Valid() {
		return math.NaN()
	}

	return math.Float64frombits(s.target[k].Load())
}

// Current returns the value the render plane had reached at the end of its
// last cycle.
func (s *Store) Current(k Kind) float64 {
	if !k.Valid() {
		return math.NaN()
	}

	return math.Float64frombits(s.published[k].Load())
}

// ApplyPreset publishes every value of p as a target.
func (s *Store) ApplyPreset(p Preset) {
	for k := range Count {
		s.SetTarget(k, p.Values[k])
	}
}

// Configure sets the default ramp length and smoothing policy. It runs on
// the control plane while rendering is stopped.
func (s *Store) Configure(rampFrames int, policy core.RampPolicy) {
	s.rampFrames = max(rampFrames, 0)
	for k := range Count {
		s.ramps[k].SetPolicy(policy)
	}
}

// RampFrames returns the default ramp length.
func (s *Store) RampFrames() int {
	return s.rampFrames
}

// Sync starts a default-length ramp toward every target published since the
// previous Sync.
func (s *Store) Sync() {
	for k := range Count {
		g := s.gen[k].Load()
		if g == s.seen[k] {
			continue
		}

		s.seen[k] = g
		s.ramps[k].Begin(math.Float64frombits(s.target[k].Load()), s.rampFrames)
	}
}

// BeginRampToward starts a ramp of k toward target over frames frames.
// The target is clamped; frames <= 0 jumps.
func (s *Store) BeginRampToward(k Kind, target float64, frames int) {
	if !k.Valid() {
		return
	}

	s.ramps[k].Begin(specs[k].Clamp(target), frames)
}

// CurrentValue returns the render-plane value of k.
func (s *Store) CurrentValue(k Kind) float64 {
	return s.ramps[k].Value()
}

// StepBound returns the largest per-frame change k's running ramp makes.
func (s *Store) StepBound(k Kind) float64 {
	return s.ramps[k].StepBound()
}

// Ramping reports whether any parameter is still moving.
func (s *Store) Ramping() bool {
	for k := range Count {
		if s.ramps[k].Active() {
			return true
		}
	}

	return false
}

// Step advances every ramp by one frame.
func (s *Store) Step() {
	for k := range Count {
		s.ramps[k].Next()
	}
}

// RampRemaining returns how many frames pass before every ramp has
// reached its target. 0 means nothing is moving.
func (s *Store) RampRemaining() int {
	n := 0
	for k := range Count {
		n = max(n, s.ramps[k].Remaining())
	}

	return n
}

// Publish makes the render-plane values visible to Current.
func (s *Store) Publish() {
	for k := range Count {
		s.published[k].Store(math.Float64bits(s.ramps[k].Value()))
	}
}

// Reset snaps every parameter to its latest target and publishes it.
func (s *Store) Reset() {
	for k := range Count {
		s.seen[k] = s.gen[k].Load()
		s.ramps[k].Set(math.Float64frombits(s.target[k].Load()))
	}

	s.Publish()
}
