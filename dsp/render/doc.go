// Package render adapts the filter kernel to a host's render callback.
//
// An [Adapter] follows the plug-in lifecycle: the host negotiates bus
// formats and the frame budget, allocates render resources, renders cycles
// and eventually deallocates. Planar hosts call [Adapter.Process]; hosts that
// hand over interleaved go-audio buffers call [Adapter.ProcessInterleaved] or
// [Adapter.ProcessInt], which work in place.
//
// Render entry points never allocate, lock, log or panic. Failed cycles
// produce silence (planar) or leave the host buffer untouched (interleaved)
// and are counted; the control plane reads the counters with
// [Adapter.Diagnostics] or [Adapter.LogDiagnostics].
package render
