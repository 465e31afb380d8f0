package kernel

import "sync/atomic"

// Diagnostics is a snapshot of the kernel's render-plane counters.
type Diagnostics struct {
	Cycles          uint64 // cycles rendered
	Frames          uint64 // frames rendered
	RejectedCycles  uint64 // cycles refused for configuration or shape errors
	DroppedEvents   uint64 // malformed or out-of-cycle events
	QueueOverflows  uint64 // events lost to a full queue
	NonFiniteInputs uint64 // NaN/Inf input samples replaced by zero
	StateResets     uint64 // channels whose filter state went non-finite
}

type counters struct {
	cycles          atomic.Uint64
	frames          atomic.Uint64
	rejected        atomic.Uint64
	dropped         atomic.Uint64
	nonFiniteInputs atomic.Uint64
	stateResets     atomic.Uint64
}
