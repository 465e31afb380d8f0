// Package biquad provides the second-order IIR runtime used by the filter
// kernel.
//
// A [Section] runs Direct Form II Transposed on one set of [Coefficients].
// Block processing is dispatched once to the best kernel registered for the
// host CPU. A [Chain] cascades sections for steeper slopes. Coefficient
// design lives in dsp/filter/design.
package biquad
