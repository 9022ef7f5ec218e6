package snake

import (
	"errors"
	"math/rand"
)

// ErrGridFull is returned by FoodSpawner.Spawn when every cell is occupied.
// The caller treats it as a cleared board, not a failure.
var ErrGridFull = errors.New("snake: no free cell for food")

// FoodSpawner picks food positions from a seeded source so runs are reproducible.
type FoodSpawner struct {
	rng *rand.Rand
}

// NewFoodSpawner creates a spawner seeded with seed.
func NewFoodSpawner(seed int64) *FoodSpawner {
	return &FoodSpawner{rng: rand.New(rand.NewSource(seed))}
}

// Spawn selects a cell uniformly at random among the cells not in occupied.
func (f *FoodSpawner) Spawn(grid Grid, occupied []Cell) (Cell, error) {
	taken := make(map[Cell]bool, len(occupied))
	for _, c := range occupied {
		if grid.InBounds(c) {
			taken[c] = true
		}
	}

	free := grid.Area() - len(taken)
	if free <= 0 {
		return Cell{}, ErrGridFull
	}

	// Walk row-major to the n-th free cell instead of materializing the list.
	n := f.rng.Intn(free)
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			c := Cell{X: x, Y: y}
			if taken[c] {
				continue
			}
			if n == 0 {
				return c, nil
			}
			n--
		}
	}
	return Cell{}, ErrGridFull
}
