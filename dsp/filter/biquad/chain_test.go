package biquad

import (
	"math"
	"testing"
)

func TestChainMatchesManualCascade(t *testing.T) {
	c1 := resonantLowpass(1000, 4, 44100)
	c2 := resonantLowpass(1000, 1/math.Sqrt2, 44100)

	chain := NewChain(c1, c2)
	if chain.NumSections() != 2 || chain.Order() != 4 {
		t.Fatalf("sections=%d order=%d", chain.NumSections(), chain.Order())
	}

	s1, s2 := NewSection(c1), NewSection(c2)
	in := testSignal(100)
	block := append([]float64(nil), in...)
	chain.ProcessBlock(block)

	ref := NewChain(c1, c2)
	for i, x := range in {
		want := s2.ProcessSample(s1.ProcessSample(x))
		if got := ref.ProcessSample(x); !almostEqual(got, want, eps) {
			t.Fatalf("ProcessSample[%d] = %v, want %v", i, got, want)
		}
		if !almostEqual(block[i], want, eps) {
			t.Fatalf("ProcessBlock[%d] = %v, want %v", i, block[i], want)
		}
	}
}

func TestChainSetCoefficientsKeepsState(t *testing.T) {
	chain := NewChain(resonantLowpass(800, 1, 44100), resonantLowpass(800, 0.7, 44100))
	for _, x := range testSignal(50) {
		chain.ProcessSample(x)
	}

	before := chain.Section(0).State()
	next := resonantLowpass(900, 1, 44100)
	chain.SetCoefficients(0, next)

	if chain.Section(0).State() != before {
		t.Fatal("SetCoefficients touched the delay state")
	}
	if chain.Section(0).Coefficients != next {
		t.Fatal("SetCoefficients did not apply")
	}
}

func TestChainSettleResetsAll(t *testing.T) {
	chain := NewChain(resonantLowpass(800, 1, 44100), resonantLowpass(800, 0.7, 44100))
	chain.Section(0).SetState([2]float64{0.2, 0.1})
	chain.Section(1).SetState([2]float64{math.Inf(1), 0})

	if chain.Settle() {
		t.Fatal("Settle() = true with an infinite section")
	}

	for i := range chain.NumSections() {
		if chain.Section(i).State() != [2]float64{} {
			t.Fatalf("section %d not reset", i)
		}
	}
}

func TestChainStableAtHighResonance(t *testing.T) {
	chain := NewChain(resonantLowpass(19000, 10, 44100), resonantLowpass(19000, 1/math.Sqrt2, 44100))

	var peak float64
	for i := range 100000 {
		x := 0.0
		if i%1000 == 0 {
			x = 1
		}
		peak = math.Max(peak, math.Abs(chain.ProcessSample(x)))
	}

	if math.IsNaN(peak) || peak > 100 {
		t.Fatalf("peak = %v", peak)
	}
}
