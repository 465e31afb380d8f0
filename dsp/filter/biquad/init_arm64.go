//go:build arm64 && !purego

package biquad

import (
	_ "github.com/cwbudde/algo-filterunit/dsp/filter/biquad/internal/arch/generic"  // register generic backend
	_ "github.com/cwbudde/algo-filterunit/dsp/filter/biquad/internal/arch/registry" // initialize backend registry
)
