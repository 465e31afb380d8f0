//go:build amd64 && !purego

package biquad

import (
	"sync"
	"testing"

	archregistry "github.com/cwbudde/algo-filterunit/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func resetDispatch() {
	processBlockImpl = nil
	processBlockName = ""
	processBlockInitOnce = sync.Once{}
}

func TestDispatchSelectsByFeatures(t *testing.T) {
	tests := []struct {
		name     string
		features cpu.Features
		want     string
	}{
		{"forced-generic", cpu.Features{ForceGeneric: true, HasSSE2: true, HasAVX2: true, Architecture: "amd64"}, "generic"},
		{"sse2", cpu.Features{HasSSE2: true, Architecture: "amd64"}, "sse2"},
		{"avx2-falls-back", cpu.Features{HasSSE2: true, HasAVX2: true, Architecture: "amd64"}, "sse2"},
	}

	c := resonantLowpass(2500, 1.78, 44100)
	in := testSignal(131)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu.SetForcedFeatures(tt.features)
			defer cpu.ResetDetection()

			resetDispatch()
			defer resetDispatch()

			if got := KernelName(); got != tt.want {
				t.Fatalf("KernelName() = %q, want %q", got, tt.want)
			}

			ref := NewSection(c)
			got := append([]float64(nil), in...)
			s := NewSection(c)
			s.ProcessBlock(got)

			for i, x := range in {
				if want := ref.ProcessSample(x); !almostEqual(got[i], want, eps) {
					t.Fatalf("sample %d = %.15f, want %.15f", i, got[i], want)
				}
			}
		})
	}
}

func TestRegisteredKernelsAMD64(t *testing.T) {
	names := archregistry.Global.Names()
	if len(names) != 2 || names[0] != "sse2" || names[1] != "generic" {
		t.Fatalf("registered = %v", names)
	}
}
