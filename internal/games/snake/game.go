package snake

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

const (
	hudHeight = 1 // Status line above the board
	minFitW   = 8 // Smallest grid accepted when fitting the terminal
	minFitH   = 4
)

// Package-level settings applied on the next Reset (set by the CLI).
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied after loading config.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLogger routes game logs (phase changes, finished runs) to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game adapts a Machine to the platform: it maps actions to machine calls,
// converts frames into elapsed time and draws snapshots.
type Game struct {
	wrap bool // Forces a wrapping board

	cfg     config.SnakeConfig
	machine *Machine
	log     *log.Logger

	seed    int64
	frame   time.Duration
	screenW int
	screenH int
	board   core.Rect // Board including its border, in screen cells

	tooSmall bool
	best     int
}

// New creates the walled variant.
func New() *Game {
	return &Game{}
}

// NewWrap creates the variant where leaving one edge enters the opposite one.
func NewWrap() *Game {
	return &Game{wrap: true}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
	registry.Register("snake_wrap", func() registry.Game {
		return NewWrap()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.wrap {
		return "snake_wrap"
	}
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.wrap {
		return "Snake (Wrap)"
	}
	return "Snake"
}

// Reset loads config and builds a fresh machine sitting on the menu.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.log = logger.With("game", g.ID())
	g.seed = cfg.Seed
	g.frame = frameDuration(cfg.TickRate)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.best = cfg.HighScore

	loaded, err := config.LoadSnake(configPath)
	if err != nil {
		g.log.Warn("using default config", "error", err)
		loaded = config.DefaultSnakeConfig()
	}
	config.ApplySnakePreset(&loaded, difficultyPreset)
	g.cfg = loaded

	g.rebuild()
}

// Resize adapts to a new terminal size. On the menu the board is refitted;
// during a run the board is only re-centered and the run freezes while
// the window is too small to show it.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h

	if g.machine == nil || g.machine.Phase() == PhaseMenu {
		g.rebuild()
		return
	}

	grid := g.machine.Grid()
	g.tooSmall = grid.Width()+2 > w || grid.Height()+hudHeight+2 > h
	g.place(grid)
}

// rebuild creates a new machine sized for the current screen.
func (g *Game) rebuild() {
	g.machine = nil

	w, h, ok := g.gridSize()
	if !ok {
		g.tooSmall = true
		return
	}

	grid, err := NewGrid(w, h, g.boundary())
	if err != nil {
		g.log.Error("cannot create grid", "error", err)
		g.tooSmall = true
		return
	}

	m, err := NewMachine(Settings{
		Grid:          grid,
		InitialLength: g.cfg.Snake.InitialLength,
		FoodPoints:    g.cfg.Scoring.FoodPoints,
		Speed:         config.NewSpeedCurve(g.cfg),
		Seed:          g.seed,
		Logger:        g.log,
	})
	if err != nil {
		// Usually a fitted grid too narrow for the configured snake.
		g.log.Debug("cannot create machine", "error", err)
		g.tooSmall = true
		return
	}

	g.machine = m
	g.tooSmall = false
	g.place(grid)
}

// gridSize returns the board size for the current screen.
func (g *Game) gridSize() (int, int, bool) {
	availW := g.screenW - 2
	availH := g.screenH - hudHeight - 2

	w, h := g.cfg.Grid.Width, g.cfg.Grid.Height
	if w == 0 {
		w = availW
		if w < minFitW {
			return 0, 0, false
		}
	}
	if h == 0 {
		h = availH
		if h < minFitH {
			return 0, 0, false
		}
	}
	if w > availW || h > availH {
		return 0, 0, false
	}
	return w, h, true
}

// place centers the board below the HUD.
func (g *Game) place(grid Grid) {
	bw := grid.Width() + 2
	bh := grid.Height() + 2
	x := max(0, (g.screenW-bw)/2)
	y := hudHeight + max(0, (g.screenH-hudHeight-bh)/2)
	g.board = core.NewRect(x, y, bw, bh)
}

func (g *Game) boundary() Boundary {
	if g.wrap || g.cfg.Grid.Wrap {
		return Wrapping
	}
	return Walled
}

// Step maps one frame of input onto the machine and advances its clock by
// the frame's elapsed time, or one nominal frame when that is unknown.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.machine == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event
	for _, a := range in.Sequence() {
		if a.IsDirection() {
			g.machine.RequestDirection(directionFor(a))
			continue
		}
		events = g.apply(a, events)
	}

	elapsed := in.Elapsed
	if elapsed <= 0 {
		elapsed = g.frame
	}
	report := g.machine.Update(elapsed)
	if report.Scored > 0 {
		events = append(events, core.Event{Kind: core.EventScored, Points: report.Scored})
	}
	if report.GameOver {
		events = g.gameOver(events)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// apply handles a non-direction action for the current phase.
func (g *Game) apply(a core.Action, events []core.Event) []core.Event {
	phase := g.machine.Phase()

	switch a {
	case core.ActionConfirm:
		switch phase {
		case PhaseMenu:
			return g.start(events)
		case PhasePaused:
			g.check(g.machine.Resume())
		case PhaseGameOver:
			g.check(g.machine.Acknowledge())
		}
	case core.ActionRestart:
		if phase == PhaseGameOver {
			return g.start(events)
		}
	case core.ActionBack:
		if phase == PhaseGameOver {
			g.check(g.machine.Acknowledge())
		}
	case core.ActionPause:
		if phase == PhasePlaying || phase == PhasePaused {
			g.check(g.machine.TogglePause())
		}
	}
	return events
}

func (g *Game) start(events []core.Event) []core.Event {
	if err := g.machine.Start(); err != nil {
		g.check(err)
		return events
	}
	events = append(events, core.Event{Kind: core.EventStarted})
	if g.machine.Phase() == PhaseGameOver {
		events = g.gameOver(events)
	}
	return events
}

func (g *Game) gameOver(events []core.Event) []core.Event {
	g.best = max(g.best, g.machine.Score())
	return append(events, core.Event{Kind: core.EventGameOver, Reason: g.machine.Outcome().String()})
}

func (g *Game) check(err error) {
	if err != nil {
		g.log.Debug("action ignored", "error", err)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.machine == nil {
		return core.GameState{InMenu: true}
	}
	snap := g.machine.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		GameOver: snap.Phase == PhaseGameOver,
		Paused:   snap.Phase == PhasePaused,
		InMenu:   snap.Phase == PhaseMenu,
		Outcome:  snap.Outcome.String(),
		Length:   snap.Len(),
		Ticks:    snap.Tick,
	}
}

// Snapshot returns the machine state, or a zero snapshot while the window is too small.
func (g *Game) Snapshot() Snapshot {
	if g.machine == nil {
		return Snapshot{}
	}
	return g.machine.Snapshot()
}

func directionFor(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionDown:
		return DirDown
	case core.ActionLeft:
		return DirLeft
	default:
		return DirRight
	}
}

// frameDuration converts a tick rate into the time one Step represents.
func frameDuration(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(tickRate)
}
