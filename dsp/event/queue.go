package event

import (
	"math/bits"
	"sync/atomic"
)

// MaxCapacity bounds the ring size accepted by NewQueue.
const MaxCapacity = 1 << 16

type cell struct {
	seq atomic.Uint64
	ev  Event
}

// Queue is a bounded multi-producer multi-consumer ring of events.
//
// Each cell carries a sequence number that tells producers and consumers
// whether it is free for the current lap, so slots are claimed with a single
// CAS on the head or tail index. The capacity is fixed at construction.
type Queue struct {
	cells []cell
	mask  uint64

	_    [56]byte
	head atomic.Uint64 // next enqueue position
	_    [56]byte
	tail atomic.Uint64 // next dequeue position
	_    [56]byte

	overflows atomic.Uint64
	malformed atomic.Uint64
}

// Counters is a snapshot of a queue's loss counters.
type Counters struct {
	// Overflows counts events dropped because the ring or the drain
	// buffer was full.
	Overflows uint64
	// Malformed counts events rejected by validation during Drain.
	Malformed uint64
}

// NewQueue returns a queue holding at least capacity events. The capacity is
// rounded up to a power of two in [2, MaxCapacity].
func NewQueue(capacity int) *Queue {
	capacity = min(max(capacity, 2), MaxCapacity)
	size := uint64(1) << bits.Len64(uint64(capacity-1))

	q := &Queue{
		cells: make([]cell, size),
		mask:  size - 1,
	}
	for i := range q.cells {
		q.cells[i].seq.Store(uint64(i))
	}

	return q
}

// Cap returns the ring capacity.
func (q *Queue) Cap() int {
	return len(q.cells)
}

// Len returns the approximate number of pending events.
func (q *Queue) Len() int {
	n := int64(q.head.Load()) - int64(q.tail.Load())
	return int(min(max(n, 0), int64(len(q.cells))))
}

// Push enqueues e without blocking. If the ring is full the oldest pending
// event is discarded to make room; Push then reports true.
func (q *Queue) Push(e Event) (dropped bool) {
	for !q.tryPush(e) {
		if _, ok := q.tryPop(); ok {
			q.overflows.Add(1)
			dropped = true
		}
	}

	return dropped
}

// Counters returns the loss counters. Safe from any goroutine.
func (q *Queue) Counters() Counters {
	return Counters{
		Overflows: q.overflows.Load(),
		Malformed: q.malformed.Load(),
	}
}

// Clear discards every pending event without counting it.
func (q *Queue) Clear() {
	for {
		if _, ok := q.tryPop(); !ok {
			return
		}
	}
}

// Drain removes the pending events, drops and counts those that are invalid
// for a cycle of frames frames, and returns the rest ordered by offset in
// dst. Events with equal offsets keep their push order. At most Cap events
// are taken per call so the render plane is not held by busy producers.
// Drain does not allocate.
func (q *Queue) Drain(frames int, dst []Event) Batch {
	n := 0
	for range len(q.cells) {
		e, ok := q.tryPop()
		if !ok {
			break
		}

		if !e.Valid(frames) {
			q.malformed.Add(1)
			continue
		}

		if n == len(dst) {
			q.overflows.Add(1)
			continue
		}

		// Stable insertion by offset.
		i := n
		for i > 0 && dst[i-1].Offset > e.Offset {
			dst[i] = dst[i-1]
			i--
		}
		dst[i] = e
		n++
	}

	return Batch{events: dst[:n]}
}

func (q *Queue) tryPush(e Event) bool {
	pos := q.head.Load()
	for {
		c := &q.cells[pos&q.mask]
		seq := c.seq.Load()

		switch diff := int64(seq) - int64(pos); {
		case diff == 0:
			if q.head.CompareAndSwap(pos, pos+1) {
				c.ev = e
				c.seq.Store(pos + 1)
				return true
			}
			pos = q.head.Load()
		case diff < 0:
			return false // full
		default:
			pos = q.head.Load()
		}
	}
}

func (q *Queue) tryPop() (Event, bool) {
	pos := q.tail.Load()
	for {
		c := &q.cells[pos&q.mask]
		seq := c.seq.Load()

		switch diff := int64(seq) - int64(pos+1); {
		case diff == 0:
			if q.tail.CompareAndSwap(pos, pos+1) {
				e := c.ev
				c.seq.Store(pos + q.mask + 1)
				return e, true
			}
			pos = q.tail.Load()
		case diff < 0:
			return Event{}, false // empty
		default:
			pos = q.tail.Load()
		}
	}
}
