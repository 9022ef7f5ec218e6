package snake

import "time"

// Snapshot is a read-only copy of the session taken between ticks.
// Renderers and determinism tests work from snapshots only.
type Snapshot struct {
	Tick          uint64
	Phase         Phase
	Outcome       Outcome
	Score         int
	FoodEaten     int
	Body          []Cell // Head first; nil outside a run
	Heading       Direction
	PendingGrowth int
	Food          Cell
	HasFood       bool
	Interval      time.Duration
	GridW         int
	GridH         int
	Boundary      Boundary
}

// Len returns the snake length in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Body)
}

// Head returns the head cell, or false when no snake exists.
func (s Snapshot) Head() (Cell, bool) {
	if len(s.Body) == 0 {
		return Cell{}, false
	}
	return s.Body[0], true
}

// Snapshot returns the current state for rendering.
func (m *Machine) Snapshot() Snapshot {
	grid := m.settings.Grid
	snap := Snapshot{
		Tick:      m.tick,
		Phase:     m.phase,
		Outcome:   m.outcome,
		Score:     m.score,
		FoodEaten: m.foodEaten,
		Food:      m.food,
		HasFood:   m.hasFood,
		Interval:  m.clock.Interval(),
		GridW:     grid.Width(),
		GridH:     grid.Height(),
		Boundary:  grid.Boundary(),
	}
	if m.snake != nil {
		snap.Body = m.snake.Body()
		snap.Heading = m.snake.Heading()
		snap.PendingGrowth = m.snake.PendingGrowth()
	}
	return snap
}
