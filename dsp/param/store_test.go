package param

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-filterunit/dsp/core"
)

func TestStoreDefaults(t *testing.T) {
	s := NewStore()

	for k, spec := range Specs() {
		kind := Kind(k)
		if s.Target(kind) != spec.Default || s.Current(kind) != spec.Default || s.CurrentValue(kind) != spec.Default {
			t.Fatalf("%v: target=%v current=%v value=%v, want %v",
				kind, s.Target(kind), s.Current(kind), s.CurrentValue(kind), spec.Default)
		}
	}
}

func TestSetTargetClamps(t *testing.T) {
	s := NewStore()

	tests := []struct {
		kind Kind
		in   float64
		want float64
	}{
		{Cutoff, 1000, 1000},
		{Cutoff, 5, 12},
		{Cutoff, 1e9, 20000},
		{Cutoff, math.NaN(), 20000},
		{Resonance, 30, 20},
		{Resonance, math.Inf(-1), -20},
	}

	for _, tt := range tests {
		if !s.SetTarget(tt.kind, tt.in) {
			t.Fatalf("SetTarget(%v) rejected", tt.kind)
		}
		if got := s.Target(tt.kind); got != tt.want {
			t.Fatalf("SetTarget(%v, %v) -> %v, want %v", tt.kind, tt.in, got, tt.want)
		}
	}

	if s.SetTarget(Kind(7), 1) || s.SetTarget(Kind(-1), 1) {
		t.Fatal("unknown kind accepted")
	}
	if !math.IsNaN(s.Target(Count)) {
		t.Fatal("Target(Count) should be NaN")
	}
}

func stepFrames(s *Store, n int) {
	for range n {
		s.Step()
	}
}

func TestSyncRampsToNewTargets(t *testing.T) {
	s := NewStore()
	s.Configure(100, core.RampLinear)

	s.SetTarget(Cutoff, 10000)
	s.Sync()

	if !s.Ramping() || s.RampRemaining() != 100 {
		t.Fatalf("after Sync ramping = %v, remaining = %d", s.Ramping(), s.RampRemaining())
	}

	stepFrames(s, 50)
	if got := s.CurrentValue(Cutoff); math.Abs(got-15000) > 1e-9 {
		t.Fatalf("halfway = %v, want 15000", got)
	}

	// Current lags until Publish.
	if s.Current(Cutoff) != 20000 {
		t.Fatalf("Current before Publish = %v", s.Current(Cutoff))
	}

	stepFrames(s, 50)
	s.Publish()
	if s.Current(Cutoff) != 10000 || s.Ramping() || s.RampRemaining() != 0 {
		t.Fatalf("Current = %v ramping = %v", s.Current(Cutoff), s.Ramping())
	}

	// Without a new publish Sync does not restart anything.
	s.Sync()
	if s.Ramping() {
		t.Fatal("Sync restarted a ramp without a new target")
	}
}

func TestBeginRampTowardClamps(t *testing.T) {
	s := NewStore()
	s.BeginRampToward(Resonance, 99, 0)

	if got := s.CurrentValue(Resonance); got != 20 {
		t.Fatalf("CurrentValue = %v, want 20", got)
	}

	s.BeginRampToward(Kind(9), 1, 0)
}

func TestResetSnapsToTargets(t *testing.T) {
	s := NewStore()
	s.Configure(1000, core.RampExponential)
	s.SetTarget(Cutoff, 500)
	s.Sync()
	s.Step()

	s.Reset()
	if s.CurrentValue(Cutoff) != 500 || s.Current(Cutoff) != 500 || s.Ramping() {
		t.Fatalf("after Reset value=%v current=%v", s.CurrentValue(Cutoff), s.Current(Cutoff))
	}
}

func TestApplyPreset(t *testing.T) {
	p, err := PresetByName("bright")
	if err != nil {
		t.Fatalf("PresetByName: %v", err)
	}

	s := NewStore()
	s.ApplyPreset(p)

	if s.Target(Cutoff) != 14000 || s.Target(Resonance) != 12 {
		t.Fatalf("targets = %v / %v", s.Target(Cutoff), s.Target(Resonance))
	}

	if _, err := PresetByName("Dark"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("PresetByName(Dark) err = %v", err)
	}
}

func TestPresetsReturnsCopy(t *testing.T) {
	ps := Presets()
	ps[0].Name = "changed"

	if Presets()[0].Name != "Prominent" {
		t.Fatal("Presets exposed internal slice")
	}
}

func TestConcurrentSetTargetAndRender(t *testing.T) {
	s := NewStore()
	s.Configure(32, core.RampLinear)

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 2000 {
				s.SetTarget(Cutoff, float64(100+w*1000+i))
				_ = s.Current(Cutoff)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 2000 {
			s.Sync()
			stepFrames(s, 64)
			s.Publish()
		}
	}()

	wg.Wait()
	<-done

	s.Sync()
	stepFrames(s, s.RampFrames())
	if got, want := s.CurrentValue(Cutoff), s.Target(Cutoff); got != want {
		t.Fatalf("final value %v, want last target %v", got, want)
	}
}
