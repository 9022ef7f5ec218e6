package snake

// InputBuffer holds at most one requested direction between ticks.
// Writers overwrite the slot; the simulation drains it once per tick.
type InputBuffer struct {
	pending Direction
	has     bool
}

// SetRequested overwrites the pending request. The last write before a tick wins.
func (b *InputBuffer) SetRequested(d Direction) {
	b.pending = d
	b.has = true
}

// Consume returns the direction to move in and empties the slot.
// A request that reverses current is dropped and current is returned.
func (b *InputBuffer) Consume(current Direction) Direction {
	if !b.has {
		return current
	}
	d := b.pending
	b.Clear()
	if d.IsOpposite(current) {
		return current
	}
	return d
}

// Pending returns the buffered direction, if any.
func (b *InputBuffer) Pending() (Direction, bool) {
	return b.pending, b.has
}

// Clear drops any pending request.
func (b *InputBuffer) Clear() {
	b.pending = DirRight
	b.has = false
}
