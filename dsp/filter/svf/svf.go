package svf

import (
	"math"
	"math/cmplx"
)

const denormalFloor = 1e-15

// Coefficients are the per-tuning constants of the trapezoidal SVF.
type Coefficients struct {
	G  float64 // prewarped integrator gain tan(pi*fc/fs)
	K  float64 // damping 1/Q
	A1 float64
	A2 float64
	A3 float64
}

// NewCoefficients tunes the filter to cutoffHz with quality factor q.
// The cutoff must lie in (0, sampleRate/2); q must be positive.
func NewCoefficients(cutoffHz, q, sampleRate float64) Coefficients {
	g := math.Tan(math.Pi * cutoffHz / sampleRate)
	k := 1 / q

	a1 := 1 / (1 + g*(g+k))
	a2 := g * a1

	return Coefficients{G: g, K: k, A1: a1, A2: a2, A3: g * a2}
}

// Response returns the low-pass transfer function at freqHz. It is the
// bilinear image of 1/(s^2 + k*s + 1) with the cutoff prewarped by G.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	zInv := cmplx.Exp(complex(0, -2*math.Pi*freqHz/sampleRate))
	s := (1 - zInv) / (1 + zInv) / complex(c.G, 0)

	return 1 / (s*s + complex(c.K, 0)*s + 1)
}

// State is one channel's integrator memory.
type State struct {
	IC1, IC2 float64
}

// ProcessSample filters one sample and returns the low-pass output.
func (s *State) ProcessSample(c *Coefficients, x float64) float64 {
	v3 := x - s.IC2
	v1 := c.A1*s.IC1 + c.A2*v3
	v2 := s.IC2 + c.A2*s.IC1 + c.A3*v3

	s.IC1 = 2*v1 - s.IC1
	s.IC2 = 2*v2 - s.IC2

	return v2
}

// ProcessBlock filters buf in place with fixed coefficients.
func (s *State) ProcessBlock(c *Coefficients, buf []float64) {
	a1, a2, a3 := c.A1, c.A2, c.A3
	ic1, ic2 := s.IC1, s.IC2

	for i, x := range buf {
		v3 := x - ic2
		v1 := a1*ic1 + a2*v3
		v2 := ic2 + a2*ic1 + a3*v3
		ic1 = 2*v1 - ic1
		ic2 = 2*v2 - ic2
		buf[i] = v2
	}

	s.IC1, s.IC2 = ic1, ic2
}

// Reset clears the integrators.
func (s *State) Reset() {
	*s = State{}
}

// Settle flushes denormal state to zero. A non-finite state is cleared and
// Settle reports false.
func (s *State) Settle() bool {
	if math.IsNaN(s.IC1) || math.IsInf(s.IC1, 0) || math.IsNaN(s.IC2) || math.IsInf(s.IC2, 0) {
		s.Reset()
		return false
	}

	if math.Abs(s.IC1) < denormalFloor {
		s.IC1 = 0
	}

	if math.Abs(s.IC2) < denormalFloor {
		s.IC2 = 0
	}

	return true
}
