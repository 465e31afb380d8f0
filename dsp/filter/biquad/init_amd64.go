//go:build amd64 && !purego

package biquad

import (
	_ "github.com/cwbudde/algo-filterunit/dsp/filter/biquad/internal/arch/amd64/sse2" // register SSE2 backend
	_ "github.com/cwbudde/algo-filterunit/dsp/filter/biquad/internal/arch/generic"   // register generic backend
	_ "github.com/cwbudde/algo-filterunit/dsp/filter/biquad/internal/arch/registry"  // initialize backend registry
)
