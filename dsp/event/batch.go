package event

// Batch is a cursor over one cycle's events in non-decreasing offset order.
// The zero Batch is empty. A Batch aliases the slice passed to Drain and is
// only valid until the next Drain into that slice.
type Batch struct {
	events []Event
	pos    int
}

// Len returns the total number of events in the batch.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}

	return len(b.events)
}

// Remaining returns the number of events not yet consumed.
func (b *Batch) Remaining() int {
	if b == nil {
		return 0
	}

	return len(b.events) - b.pos
}

// Next returns the next event.
func (b *Batch) Next() (Event, bool) {
	if b == nil || b.pos >= len(b.events) {
		return Event{}, false
	}

	e := b.events[b.pos]
	b.pos++

	return e, true
}

// PeekOffset returns the offset of the next event without consuming it.
func (b *Batch) PeekOffset() (int, bool) {
	if b == nil || b.pos >= len(b.events) {
		return 0, false
	}

	return b.events[b.pos].Offset, true
}

// Reset rewinds the cursor to the first event.
func (b *Batch) Reset() {
	if b != nil {
		b.pos = 0
	}
}
