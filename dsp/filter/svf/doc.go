// Package svf implements a trapezoidal (topology-preserving) state-variable
// low-pass.
//
// The two integrator states carry energy rather than past outputs, so the
// filter stays well behaved when cutoff and Q change every sample. That makes
// it the preferred voicing under fast automation.
//
// Coefficients are shared; each channel owns a [State].
package svf
