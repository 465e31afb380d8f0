// Package event carries timed parameter and transport events from the
// control plane to the render plane.
//
// Producers on any goroutine [Queue.Push] events into a bounded lock-free
// ring. Once per render cycle the render goroutine calls [Queue.Drain], which
// validates the pending events, orders them by sample offset and hands back a
// [Batch] cursor. Neither side allocates or blocks. When the ring is full the
// oldest pending event is dropped and counted.
package event
