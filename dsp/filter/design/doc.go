// Package design derives biquad coefficients for the filter unit.
//
// [ResonantLowpass] is the unit's native voicing: a 12 dB/oct low-pass whose
// resonance is given in dB of peak emphasis. [Lowpass] is the plain RBJ
// design used for the flat section of the 24 dB cascade. Cutoff frequencies
// must be clamped with [ClampCutoff] before derivation.
package design
