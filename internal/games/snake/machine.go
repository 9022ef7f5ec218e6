package snake

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Phase is the top-level state of a snake session.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Outcome records why a run ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWallCollision
	OutcomeSelfCollision
	OutcomeCleared
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWallCollision:
		return "wall"
	case OutcomeSelfCollision:
		return "self"
	case OutcomeCleared:
		return "cleared"
	default:
		return ""
	}
}

func outcomeFor(c DeathCause) Outcome {
	if c == CauseWall {
		return OutcomeWallCollision
	}
	return OutcomeSelfCollision
}

// ErrIllegalTransition is returned when an action does not apply to the current phase.
var ErrIllegalTransition = errors.New("snake: illegal transition")

// SpeedCurve maps progress to a tick interval.
type SpeedCurve interface {
	Interval(score int, ticks int) time.Duration
}

// ConstantSpeed is a SpeedCurve that never changes.
type ConstantSpeed time.Duration

// Interval implements SpeedCurve.
func (c ConstantSpeed) Interval(int, int) time.Duration {
	return time.Duration(c)
}

// Settings configures a Machine.
type Settings struct {
	Grid          Grid
	InitialLength int
	FoodPoints    int
	Speed         SpeedCurve
	Seed          int64
	Logger        *log.Logger
}

// TickReport describes what a call to Update did.
type TickReport struct {
	Ticked   bool        // A simulation step ran
	Step     StepOutcome // Valid when Ticked
	Scored   int         // Points added this tick
	GameOver bool        // The run ended this tick
	Outcome  Outcome     // Valid when GameOver
}

// Machine owns the session state and wires the grid, snake, input buffer,
// food spawner and clock together. All methods must be called from one goroutine.
type Machine struct {
	settings Settings
	logger   *log.Logger

	phase   Phase
	outcome Outcome

	snake     *Snake
	food      Cell
	hasFood   bool
	score     int
	foodEaten int
	tick      uint64

	input   InputBuffer
	clock   *Clock
	spawner *FoodSpawner
}

// NewMachine validates settings and returns a machine sitting on the menu.
func NewMachine(s Settings) (*Machine, error) {
	if s.Grid.Area() == 0 {
		return nil, errors.New("snake: settings need a grid")
	}
	if s.InitialLength < 1 || s.InitialLength > s.Grid.Width() || s.InitialLength >= s.Grid.Area() {
		return nil, fmt.Errorf("snake: initial length %d does not fit a %dx%d grid",
			s.InitialLength, s.Grid.Width(), s.Grid.Height())
	}
	if s.FoodPoints <= 0 {
		s.FoodPoints = 1
	}
	if s.Speed == nil {
		return nil, errors.New("snake: settings need a speed curve")
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}

	clock, err := NewClock(s.Speed.Interval(0, 0))
	if err != nil {
		return nil, err
	}
	clock.Pause()

	return &Machine{
		settings: s,
		logger:   s.Logger,
		phase:    PhaseMenu,
		clock:    clock,
		spawner:  NewFoodSpawner(s.Seed),
	}, nil
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Outcome returns why the last run ended, or OutcomeNone.
func (m *Machine) Outcome() Outcome { return m.outcome }

// Score returns the current score.
func (m *Machine) Score() int { return m.score }

// Grid returns the board geometry.
func (m *Machine) Grid() Grid { return m.settings.Grid }

// Start begins a fresh run from the menu, or restarts after a game over.
func (m *Machine) Start() error {
	if m.phase != PhaseMenu && m.phase != PhaseGameOver {
		return m.illegal("start")
	}
	if err := m.reset(); err != nil {
		return err
	}
	m.transition(PhasePlaying)
	if _, err := m.spawnFood(); err != nil {
		m.finish(OutcomeCleared)
	}
	return nil
}

// Pause freezes a running game.
func (m *Machine) Pause() error {
	if m.phase != PhasePlaying {
		return m.illegal("pause")
	}
	m.clock.Pause()
	m.transition(PhasePaused)
	return nil
}

// Resume continues a paused game. Time spent paused is never replayed.
func (m *Machine) Resume() error {
	if m.phase != PhasePaused {
		return m.illegal("resume")
	}
	m.clock.Resume()
	m.transition(PhasePlaying)
	return nil
}

// TogglePause pauses a running game or resumes a paused one.
func (m *Machine) TogglePause() error {
	if m.phase == PhasePaused {
		return m.Resume()
	}
	return m.Pause()
}

// Acknowledge leaves the game over screen for the menu.
func (m *Machine) Acknowledge() error {
	if m.phase != PhaseGameOver {
		return m.illegal("acknowledge")
	}
	m.snake = nil
	m.hasFood = false
	m.transition(PhaseMenu)
	return nil
}

// RequestDirection buffers a turn for the next tick.
// Requests outside a run are ignored and reported as not accepted.
func (m *Machine) RequestDirection(d Direction) bool {
	if m.phase != PhasePlaying && m.phase != PhasePaused {
		return false
	}
	m.input.SetRequested(d)
	return true
}

// Update feeds elapsed frame time to the clock and runs at most one tick.
func (m *Machine) Update(elapsed time.Duration) TickReport {
	if m.phase != PhasePlaying {
		return TickReport{}
	}
	if !m.clock.Advance(elapsed) {
		return TickReport{}
	}
	return m.step()
}

// step runs one simulation tick.
func (m *Machine) step() TickReport {
	dir := m.input.Consume(m.snake.Heading())

	var food *Cell
	if m.hasFood {
		f := m.food
		food = &f
	}

	out := m.snake.Step(dir, m.settings.Grid, food)
	m.tick++
	report := TickReport{Ticked: true, Step: out}

	switch out.Result {
	case Died:
		m.finish(outcomeFor(out.Cause))
		report.GameOver = true
		report.Outcome = m.outcome

	case Ate:
		m.hasFood = false
		m.score += m.settings.FoodPoints
		m.foodEaten++
		report.Scored = m.settings.FoodPoints
		m.retime()

		if _, err := m.spawnFood(); err != nil {
			m.finish(OutcomeCleared)
			report.GameOver = true
			report.Outcome = OutcomeCleared
		}
	}

	return report
}

// reset re-creates the per-run state.
func (m *Machine) reset() error {
	grid := m.settings.Grid
	length := m.settings.InitialLength

	head := grid.Center()
	head.X = max(head.X, length-1)
	s, err := NewSnake(grid, head, DirRight, length)
	if err != nil {
		return err
	}

	m.snake = s
	m.hasFood = false
	m.score = 0
	m.foodEaten = 0
	m.tick = 0
	m.outcome = OutcomeNone
	m.input.Clear()
	m.retime()
	m.clock.Resume()
	return nil
}

// retime applies the speed curve between ticks.
func (m *Machine) retime() {
	d := m.settings.Speed.Interval(m.score, int(m.tick))
	if err := m.clock.SetInterval(d); err != nil {
		m.logger.Warn("ignoring speed change", "interval", d, "error", err)
	}
}

func (m *Machine) spawnFood() (Cell, error) {
	c, err := m.spawner.Spawn(m.settings.Grid, m.snake.body)
	if err != nil {
		return Cell{}, err
	}
	m.food = c
	m.hasFood = true
	return c, nil
}

func (m *Machine) finish(o Outcome) {
	m.outcome = o
	m.hasFood = false
	m.input.Clear()
	m.clock.Pause()
	m.transition(PhaseGameOver)
	m.logger.Info("run finished", "outcome", o, "score", m.score, "length", m.snake.Len(), "ticks", m.tick)
}

func (m *Machine) transition(to Phase) {
	m.logger.Debug("phase change", "from", m.phase, "to", to)
	m.phase = to
}

func (m *Machine) illegal(action string) error {
	return fmt.Errorf("%w: %s while %s", ErrIllegalTransition, action, m.phase)
}
