package snake

import "fmt"

// StepResult is the outcome class of a single snake step.
type StepResult int

const (
	Moved StepResult = iota
	Ate
	Died
)

func (r StepResult) String() string {
	switch r {
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case Died:
		return "died"
	default:
		return "unknown"
	}
}

// DeathCause says why a step ended in Died.
type DeathCause int

const (
	CauseNone DeathCause = iota
	CauseWall
	CauseSelf
)

func (c DeathCause) String() string {
	switch c {
	case CauseWall:
		return "wall-collision"
	case CauseSelf:
		return "self-collision"
	default:
		return "none"
	}
}

// StepOutcome reports what a step did.
type StepOutcome struct {
	Result StepResult
	Cause  DeathCause
	Head   Cell // Head the snake moved to, or tried to move to on death
}

// Snake is the ordered body of the snake, head at index 0.
type Snake struct {
	body          []Cell
	heading       Direction
	pendingGrowth int
}

// NewSnake lays out a straight snake of the given length with the head at head,
// its body trailing behind the heading.
func NewSnake(grid Grid, head Cell, heading Direction, length int) (*Snake, error) {
	if length < 1 {
		return nil, fmt.Errorf("snake: invalid initial length %d", length)
	}
	if length > grid.Area() {
		return nil, fmt.Errorf("snake: length %d does not fit a %dx%d grid", length, grid.Width(), grid.Height())
	}

	back := heading.Opposite()
	body := make([]Cell, 0, length)
	seen := make(map[Cell]bool, length)
	c := head
	for n := 0; n < length; n++ {
		c = grid.Normalize(c)
		if !grid.InBounds(c) || seen[c] {
			return nil, fmt.Errorf("snake: cannot place %d segments behind %v heading %s", length, head, heading)
		}
		seen[c] = true
		body = append(body, c)
		c = c.Add(back)
	}

	return &Snake{body: body, heading: heading}, nil
}

// Head returns the head cell.
func (s *Snake) Head() Cell {
	return s.body[0]
}

// Tail returns the last cell.
func (s *Snake) Tail() Cell {
	return s.body[len(s.body)-1]
}

// Len returns the number of occupied cells.
func (s *Snake) Len() int {
	return len(s.body)
}

// Heading returns the direction of the last applied move.
func (s *Snake) Heading() Direction {
	return s.heading
}

// PendingGrowth returns how many eaten items have not yet extended the body.
func (s *Snake) PendingGrowth() int {
	return s.pendingGrowth
}

// Body returns a copy of the occupied cells, head first.
func (s *Snake) Body() []Cell {
	out := make([]Cell, len(s.body))
	copy(out, s.body)
	return out
}

// Occupies checks if the snake covers the given cell.
func (s *Snake) Occupies(c Cell) bool {
	for _, seg := range s.body {
		if seg == c {
			return true
		}
	}
	return false
}

// move is a step computed against the current body but not yet applied.
type move struct {
	head       Cell
	dir        Direction
	retainTail bool
	ate        bool
}

// Step advances the snake one cell in dir. Food may be nil.
// A Died outcome leaves the snake untouched.
func (s *Snake) Step(dir Direction, grid Grid, food *Cell) StepOutcome {
	m, out := s.plan(dir, grid, food)
	if out.Result == Died {
		return out
	}
	s.apply(m)
	return out
}

// plan runs the collision checks against the body as it is before the move.
func (s *Snake) plan(dir Direction, grid Grid, food *Cell) (move, StepOutcome) {
	newHead := grid.Normalize(s.Head().Add(dir))

	if !grid.InBounds(newHead) {
		return move{}, StepOutcome{Result: Died, Cause: CauseWall, Head: newHead}
	}

	// The tail vacates its cell this tick unless growth is pending.
	retainTail := s.pendingGrowth > 0
	moving := s.body
	if !retainTail {
		moving = s.body[:len(s.body)-1]
	}
	for _, seg := range moving {
		if seg == newHead {
			return move{}, StepOutcome{Result: Died, Cause: CauseSelf, Head: newHead}
		}
	}

	m := move{
		head:       newHead,
		dir:        dir,
		retainTail: retainTail,
		ate:        food != nil && *food == newHead,
	}
	if m.ate {
		return m, StepOutcome{Result: Ate, Head: newHead}
	}
	return m, StepOutcome{Result: Moved, Head: newHead}
}

func (s *Snake) apply(m move) {
	next := make([]Cell, 0, len(s.body)+1)
	next = append(next, m.head)
	if m.retainTail {
		next = append(next, s.body...)
		s.pendingGrowth--
	} else {
		next = append(next, s.body[:len(s.body)-1]...)
	}
	if m.ate {
		s.pendingGrowth++
	}
	s.body = next
	s.heading = m.dir
}
