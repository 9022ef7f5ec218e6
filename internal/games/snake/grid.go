package snake

import "fmt"

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by the direction's unit vector.
func (c Cell) Add(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Boundary controls what happens at the grid edges.
type Boundary int

const (
	// Walled grids kill the snake when the head leaves the board.
	Walled Boundary = iota
	// Wrapping grids re-enter on the opposite edge.
	Wrapping
)

func (b Boundary) String() string {
	if b == Wrapping {
		return "wrapping"
	}
	return "walled"
}

// Grid is the static board geometry. It is immutable after construction.
type Grid struct {
	width    int
	height   int
	boundary Boundary
}

// NewGrid creates a grid of the given size.
func NewGrid(width, height int, boundary Boundary) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("snake: invalid grid size %dx%d", width, height)
	}
	return Grid{width: width, height: height, boundary: boundary}, nil
}

// Width returns the number of columns.
func (g Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g Grid) Height() int { return g.height }

// Boundary returns the edge policy.
func (g Grid) Boundary() Boundary { return g.boundary }

// Area returns the number of cells on the board.
func (g Grid) Area() int { return g.width * g.height }

// InBounds reports whether c lies on the board.
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Normalize maps c back onto the board for wrapping grids.
// Walled grids return c unchanged, so an off-board cell stays off-board.
func (g Grid) Normalize(c Cell) Cell {
	if g.boundary != Wrapping {
		return c
	}
	return Cell{X: wrap(c.X, g.width), Y: wrap(c.Y, g.height)}
}

// Center returns the middle cell of the board.
func (g Grid) Center() Cell {
	return Cell{X: g.width / 2, Y: g.height / 2}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
