package param

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-filterunit/dsp/core"
)

func TestRampReachesTargetWithinWindow(t *testing.T) {
	for _, policy := range []core.RampPolicy{core.RampLinear, core.RampExponential} {
		for _, frames := range []int{1, 2, 7, 882} {
			t.Run(policy.String(), func(t *testing.T) {
				var r Ramp
				r.SetPolicy(policy)
				r.Set(20000)
				r.Begin(384, frames)

				bound := r.StepBound()
				prev := r.Value()
				for i := range frames {
					v := r.Next()
					if d := math.Abs(v - prev); d > bound+1e-9 {
						t.Fatalf("frames=%d step %d moved %v, bound %v", frames, i, d, bound)
					}
					prev = v
				}

				if r.Value() != 384 || r.Active() {
					t.Fatalf("frames=%d: value %v active %v after window", frames, r.Value(), r.Active())
				}
			})
		}
	}
}

func TestRampLinearIsEven(t *testing.T) {
	var r Ramp
	r.Begin(10, 4)

	want := []float64{2.5, 5, 7.5, 10, 10}
	for i, w := range want {
		if got := r.Next(); math.Abs(got-w) > 1e-12 {
			t.Fatalf("Next()#%d = %v, want %v", i, got, w)
		}
	}
}

func TestRampZeroFramesJumps(t *testing.T) {
	var r Ramp
	r.Set(1)
	r.Begin(5, 0)

	if r.Value() != 5 || r.Active() || r.StepBound() != 0 {
		t.Fatalf("value=%v active=%v bound=%v", r.Value(), r.Active(), r.StepBound())
	}
}

func TestRampRemainingCountsDown(t *testing.T) {
	for _, policy := range []core.RampPolicy{core.RampLinear, core.RampExponential} {
		var r Ramp
		r.SetPolicy(policy)
		r.Begin(100, 50)

		for i := range 50 {
			if got := r.Remaining(); got != 50-i {
				t.Fatalf("%v: Remaining() after %d steps = %d, want %d", policy, i, got, 50-i)
			}
			r.Next()
		}

		if r.Remaining() != 0 || r.Active() || r.Value() != 100 {
			t.Fatalf("%v: remaining=%d active=%v value=%v", policy, r.Remaining(), r.Active(), r.Value())
		}
	}
}

func TestRampRetargetMidway(t *testing.T) {
	var r Ramp
	r.Begin(10, 10)
	for range 5 {
		r.Next()
	}

	r.Begin(0, 5)
	if got := r.Next(); math.Abs(got-4) > 1e-12 {
		t.Fatalf("first step after retarget = %v, want 4", got)
	}
}
