package testutil

import (
	"math"
	"slices"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(1000, 48000, 0.5, 48)

	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	// 48 samples are exactly one period at 1 kHz / 48 kHz.
	if got := s[12]; math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("s[12] = %v, want 0.5", got)
	}

	if got, want := RMS(s), 0.5/math.Sqrt2; math.Abs(got-want) > 1e-12 {
		t.Fatalf("RMS = %v, want %v", got, want)
	}
}

func TestNoiseIsSeeded(t *testing.T) {
	a := Noise(42, 0.25, 256)
	b := Noise(42, 0.25, 256)
	c := Noise(43, 0.25, 256)

	if !slices.Equal(a, b) {
		t.Fatal("equal seeds gave different noise")
	}

	if slices.Equal(a, c) {
		t.Fatal("different seeds gave equal noise")
	}

	RequireBounded(t, a, 0.25)
}

func TestImpulse(t *testing.T) {
	tests := []struct {
		n, pos int
		want   []float64
	}{
		{4, 0, []float64{1, 0, 0, 0}},
		{4, 3, []float64{0, 0, 0, 1}},
		{4, 4, []float64{0, 0, 0, 0}},
		{4, -1, []float64{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		if got := Impulse(tt.n, tt.pos); !slices.Equal(got, tt.want) {
			t.Fatalf("Impulse(%d, %d) = %v, want %v", tt.n, tt.pos, got, tt.want)
		}
	}
}

func TestOnesAndAlternating(t *testing.T) {
	if got := Ones(3); !slices.Equal(got, []float64{1, 1, 1}) {
		t.Fatalf("Ones(3) = %v", got)
	}

	if got := Alternating(2, 4); !slices.Equal(got, []float64{2, -2, 2, -2}) {
		t.Fatalf("Alternating(2, 4) = %v", got)
	}
}

func TestRMSInt(t *testing.T) {
	if got := RMS([]int{3, -3, 3, -3}); got != 3 {
		t.Fatalf("RMS = %v, want 3", got)
	}

	if got := RMS([]int(nil)); got != 0 {
		t.Fatalf("RMS(nil) = %v, want 0", got)
	}
}
