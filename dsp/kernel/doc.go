// Package kernel is the real-time core of the filter unit.
//
// A [Kernel] owns per-channel filter memory, the parameter store and the
// event queue. [Kernel.Process] splits each render cycle at event offsets so
// parameter changes land on the exact frame they were scheduled for, derives
// coefficients from the ramped cutoff and resonance, runs the selected
// [Topology] and sanitizes the output. The render path never allocates,
// locks or panics; problems are counted and exposed through [Diagnostics].
//
// Configure, Deconfigure and Reset belong to the control plane and must not
// run concurrently with Process.
package kernel
