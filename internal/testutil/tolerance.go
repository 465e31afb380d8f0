package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t when got and want differ in length or any
// pair differs by more than eps. The report names the worst sample.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}

	worst, at := 0.0, -1
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > worst || math.IsNaN(d) {
			worst, at = d, i
			if math.IsNaN(d) {
				break
			}
		}
	}

	if at >= 0 && !(worst <= eps) {
		t.Fatalf("[%d] = %v, want %v (diff %g > %g)", at, got[at], want[at], worst, eps)
	}
}

// RequireFinite fails t at the first NaN or Inf in data.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("[%d] = %v, want finite", i, v)
		}
	}
}

// RequireBounded fails t at the first sample whose magnitude exceeds limit.
func RequireBounded(t testing.TB, data []float64, limit float64) {
	t.Helper()

	for i, v := range data {
		if !(math.Abs(v) <= limit) {
			t.Fatalf("|[%d]| = %v, want <= %v", i, math.Abs(v), limit)
		}
	}
}
