package param

import (
	"math"

	"github.com/cwbudde/algo-filterunit/dsp/core"
)

// settleRatio is the residual the exponential ramp reaches at the end of
// its window (-60 dB) before it snaps.
const settleRatio = 1e-3

// Ramp moves a value toward a target over a fixed number of frames.
// The zero Ramp holds 0 and is not ramping.
type Ramp struct {
	policy    core.RampPolicy
	value     float64
	target    float64
	step      float64 // linear increment per frame
	coeff     float64 // exponential decay per frame
	bound     float64
	remaining int
}

// SetPolicy selects the smoothing curve for subsequent ramps.
func (r *Ramp) SetPolicy(p core.RampPolicy) {
	r.policy = p
}

// Begin starts a ramp from the current value to target lasting frames
// frames. frames <= 0 jumps immediately.
func (r *Ramp) Begin(target float64, frames int) {
	r.target = target

	delta := target - r.value
	if frames <= 0 || delta == 0 {
		r.Snap()
		return
	}

	r.remaining = frames

	switch r.policy {
	case core.RampExponential:
		r.coeff = math.Pow(settleRatio, 1/float64(frames))
		r.bound = math.Abs(delta) * math.Max(1-r.coeff, settleRatio/r.coeff)
	default:
		r.step = delta / float64(frames)
		r.bound = math.Abs(r.step)
	}
}

// Next advances one frame and returns the new value.
func (r *Ramp) Next() float64 {
	if r.remaining == 0 {
		return r.value
	}

	r.remaining--
	if r.remaining == 0 {
		r.value = r.target
		return r.value
	}

	if r.policy == core.RampExponential {
		r.value = r.target + (r.value-r.target)*r.coeff
	} else {
		r.value += r.step
	}

	return r.value
}

// Snap ends the ramp at its target.
func (r *Ramp) Snap() {
	r.value = r.target
	r.remaining = 0
	r.bound = 0
}

// Set jumps to v and makes it the target.
func (r *Ramp) Set(v float64) {
	r.target = v
	r.Snap()
}

// Value returns the current value.
func (r *Ramp) Value() float64 { return r.value }

// Target returns the value the ramp is heading to.
func (r *Ramp) Target() float64 { return r.target }

// Active reports whether the ramp has frames left.
func (r *Ramp) Active() bool { return r.remaining > 0 }

// Remaining returns the frames left until the target is reached.
func (r *Ramp) Remaining() int { return r.remaining }

// StepBound returns the largest per-frame change of the running ramp.
func (r *Ramp) StepBound() float64 { return r.bound }
