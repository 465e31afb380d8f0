// Package buffer describes the sample memory of one render cycle.
//
// A [View] is the non-owning per-channel description handed to the kernel
// for a single render call; it never outlives that call and owns nothing.
// [Planar] is owned, preallocated per-channel storage that adapters use as
// scratch when a host delivers interleaved audio. The interleave helpers
// convert between the two without allocating.
package buffer
