package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// resonantLowpass returns an RBJ low-pass at fc with quality q.
func resonantLowpass(fc, q, sr float64) Coefficients {
	w := 2 * math.Pi * fc / sr
	alpha := math.Sin(w) / (2 * q)
	cw := math.Cos(w)
	a0 := 1 + alpha

	return Coefficients{
		B0: (1 - cw) / 2 / a0,
		B1: (1 - cw) / a0,
		B2: (1 - cw) / 2 / a0,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}
}

func testSignal(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(float64(i)*0.11) + 0.3*math.Sin(float64(i)*1.7)
	}

	return x
}

func TestProcessSample_DFIIT(t *testing.T) {
	c := Coefficients{B0: 0.5, B1: 0.25, B2: 0.125, A1: -0.5, A2: 0.25}
	s := NewSection(c)

	// Hand-computed recurrence for the impulse.
	y0 := s.ProcessSample(1) // y=0.5, d0=0.25+0.25=0.5, d1=0.125-0.125=0
	y1 := s.ProcessSample(0) // y=0.5, d0=0.25+0=0.25, d1=-0.125
	y2 := s.ProcessSample(0) // y=0.25

	want := []float64{0.5, 0.5, 0.25}
	for i, got := range []float64{y0, y1, y2} {
		if !almostEqual(got, want[i], eps) {
			t.Fatalf("y[%d] = %v, want %v", i, got, want[i])
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	c := resonantLowpass(1000, 4, 48000)

	for _, n := range []int{1, 2, 3, 17, 256} {
		in := testSignal(n)

		ref := NewSection(c)
		want := make([]float64, n)
		for i, x := range in {
			want[i] = ref.ProcessSample(x)
		}

		got := append([]float64(nil), in...)
		s := NewSection(c)
		s.ProcessBlock(got)

		for i := range got {
			if !almostEqual(got[i], want[i], eps) {
				t.Fatalf("n=%d sample %d = %.15f, want %.15f", n, i, got[i], want[i])
			}
		}

		if s.State() != ref.State() {
			stateGot, stateWant := s.State(), ref.State()
			if !almostEqual(stateGot[0], stateWant[0], eps) || !almostEqual(stateGot[1], stateWant[1], eps) {
				t.Fatalf("n=%d state = %v, want %v", n, stateGot, stateWant)
			}
		}
	}
}

func TestStateSaveRestore(t *testing.T) {
	s := NewSection(resonantLowpass(2000, 2, 44100))
	for _, x := range testSignal(20) {
		s.ProcessSample(x)
	}

	saved := s.State()
	a := s.ProcessSample(0.3)

	s.SetState(saved)
	if b := s.ProcessSample(0.3); a != b {
		t.Fatalf("after restore = %v, want %v", b, a)
	}

	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("Reset left state %v", s.State())
	}
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name   string
		state  [2]float64
		wantOK bool
		want   [2]float64
	}{
		{name: "normal", state: [2]float64{0.5, -0.25}, wantOK: true, want: [2]float64{0.5, -0.25}},
		{name: "denormal", state: [2]float64{1e-300, 0.1}, wantOK: true, want: [2]float64{0, 0.1}},
		{name: "nan", state: [2]float64{math.NaN(), 0.1}, want: [2]float64{}},
		{name: "inf", state: [2]float64{0, math.Inf(-1)}, want: [2]float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Section
			s.SetState(tt.state)

			if ok := s.Settle(); ok != tt.wantOK {
				t.Fatalf("Settle() = %v, want %v", ok, tt.wantOK)
			}

			if s.State() != tt.want {
				t.Fatalf("state = %v, want %v", s.State(), tt.want)
			}
		})
	}
}

func TestSilenceStaysSilent(t *testing.T) {
	s := NewSection(resonantLowpass(12, 10, 44100))
	buf := make([]float64, 4096)
	s.ProcessBlock(buf)

	for i, y := range buf {
		if y != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, y)
		}
	}
}

func TestKernelName(t *testing.T) {
	Prime()
	if KernelName() == "" {
		t.Fatal("no block kernel selected")
	}
}

func BenchmarkProcessBlock(b *testing.B) {
	s := NewSection(resonantLowpass(1000, 2, 48000))
	buf := testSignal(512)

	b.SetBytes(int64(len(buf) * 8))
	b.ReportAllocs()

	for b.Loop() {
		s.ProcessBlock(buf)
	}
}
