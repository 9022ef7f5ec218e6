package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	TickRate  int   // Frames per second driving Game.Step (default 60)
	Seed      int64 // RNG seed for deterministic gameplay
	HighScore int   // Best recorded score, shown on the menu
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the coarse status the platform needs to drive persistence.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the run has ended
	Paused   bool   // Whether the game is paused
	InMenu   bool   // Whether the game is on its title menu
	Outcome  string // Why the run ended; empty while playing
	Length   int    // Snake length at the time of the snapshot
	Ticks    uint64 // Simulation ticks elapsed in the current run
}

// EventKind identifies something that happened during a Step.
type EventKind int

const (
	EventStarted EventKind = iota + 1
	EventScored
	EventGameOver
)

// Event is emitted by a game for observers such as metrics.
// Events never feed back into the simulation.
type Event struct {
	Kind   EventKind
	Points int    // Score delta for EventScored
	Reason string // Outcome for EventGameOver
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State  GameState
	Events []Event
}
