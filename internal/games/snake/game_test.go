package snake

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func newTestGame(t *testing.T, g *Game, w, h int) *Game {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.ScreenW = w
	cfg.ScreenH = h
	cfg.Seed = 12345
	g.Reset(cfg)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// runUntil steps empty frames until cond holds, up to limit frames.
func runUntil(g *Game, limit int, cond func(core.StepResult) bool) (core.StepResult, bool) {
	var res core.StepResult
	for n := 0; n < limit; n++ {
		res = g.Step(frame())
		if cond(res) {
			return res, true
		}
	}
	return res, false
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and inputs should produce identical snapshots
	g1 := newTestGame(t, New(), 80, 24)
	g2 := newTestGame(t, New(), 80, 24)

	for i := 0; i < 600; i++ {
		var in core.InputFrame
		switch i {
		case 0:
			in = frame(core.ActionConfirm)
		case 60:
			in = frame(core.ActionDown)
		case 120:
			in = frame(core.ActionLeft)
		case 200:
			in = frame(core.ActionUp, core.ActionRight)
		default:
			in = frame()
		}

		g1.Step(in)
		g2.Step(in)
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()
	if snap1.Tick == 0 {
		t.Fatal("simulation never ticked")
	}
	if !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", snap1, snap2)
	}
}

func TestGameFitsTerminal(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	snap := g.Snapshot()
	if snap.GridW != 78 || snap.GridH != 24-hudHeight-2 {
		t.Errorf("grid = %dx%d, want 78x%d", snap.GridW, snap.GridH, 24-hudHeight-2)
	}
	if snap.Boundary != Walled {
		t.Errorf("boundary = %s, want walled", snap.Boundary)
	}

	wrap := newTestGame(t, NewWrap(), 80, 24)
	if wrap.Snapshot().Boundary != Wrapping {
		t.Error("wrap variant should use a wrapping board")
	}
	if wrap.ID() != "snake_wrap" || New().ID() != "snake" {
		t.Error("unexpected variant IDs")
	}
}

func TestConfirmStartsRun(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	if !g.State().InMenu {
		t.Fatal("game should start on the menu")
	}

	res := g.Step(frame(core.ActionConfirm))
	if res.State.InMenu || res.State.GameOver || res.State.Length != 3 {
		t.Errorf("state after confirm = %+v", res.State)
	}
	if len(res.Events) == 0 || res.Events[0].Kind != core.EventStarted {
		t.Errorf("events = %+v, want started", res.Events)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	g.Step(frame(core.ActionConfirm))

	// Initial direction is right; left is a reversal and must be ignored.
	g.Step(frame(core.ActionLeft))
	if _, ok := runUntil(g, 60, func(r core.StepResult) bool { return r.State.Ticks > 0 }); !ok {
		t.Fatal("no tick within a second")
	}
	if g.State().GameOver {
		t.Fatal("reversal killed the snake")
	}
	if snap := g.Snapshot(); snap.Heading != DirRight {
		t.Errorf("heading = %s, want right", snap.Heading)
	}
}

func TestDirectionsReplayInOrder(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	g.Step(frame(core.ActionConfirm))

	// Up then Down in one frame: the later request wins.
	g.Step(frame(core.ActionUp, core.ActionDown))
	runUntil(g, 60, func(r core.StepResult) bool { return r.State.Ticks > 0 })
	if snap := g.Snapshot(); snap.Heading != DirDown {
		t.Errorf("heading = %s, want down", snap.Heading)
	}
}

func TestStallFiresOneTick(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	g.Step(frame(core.ActionConfirm))

	interval := g.Snapshot().Interval
	stall := frame()
	stall.Elapsed = 5 * interval
	res := g.Step(stall)
	if res.State.Ticks != 1 {
		t.Fatalf("ticks after a 5x stall = %d, want 1", res.State.Ticks)
	}

	// The excess was dropped, so a short frame does not fire again.
	short := frame()
	short.Elapsed = interval / 2
	if res = g.Step(short); res.State.Ticks != 1 {
		t.Errorf("ticks after a half-interval frame = %d, want 1", res.State.Ticks)
	}

	short.Elapsed = interval / 2
	if res = g.Step(short); res.State.Ticks != 2 {
		t.Errorf("ticks after a full interval = %d, want 2", res.State.Ticks)
	}
}

func TestElapsedDrivesSpeed(t *testing.T) {
	// Frames that each span a whole interval tick every frame,
	// whatever the nominal frame rate is.
	g := newTestGame(t, New(), 80, 24)
	g.Step(frame(core.ActionConfirm))

	in := frame()
	in.Elapsed = g.Snapshot().Interval
	for n := 0; n < 3; n++ {
		g.Step(in)
	}
	if got := g.State().Ticks; got != 3 {
		t.Errorf("ticks = %d, want 3", got)
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	g.Step(frame(core.ActionConfirm))

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused")
	}
	ticks := res.State.Ticks
	for n := 0; n < 300; n++ {
		g.Step(frame())
	}
	if g.State().Ticks != ticks {
		t.Error("simulation advanced while paused")
	}

	res = g.Step(frame(core.ActionPause))
	if res.State.Paused {
		t.Error("expected resumed")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t, New(), 30, 12)
	g.Step(frame(core.ActionConfirm))

	// Heading right on a walled board always ends at the wall.
	res, ok := runUntil(g, 5000, func(r core.StepResult) bool { return r.State.GameOver })
	if !ok {
		t.Fatal("run never ended")
	}
	if res.State.Outcome != "wall" {
		t.Errorf("outcome = %q, want wall", res.State.Outcome)
	}
	var sawGameOver bool
	for _, e := range res.Events {
		if e.Kind == core.EventGameOver && e.Reason == "wall" {
			sawGameOver = true
		}
	}
	if !sawGameOver {
		t.Errorf("events = %+v, want game over", res.Events)
	}

	res = g.Step(frame(core.ActionRestart))
	if res.State.GameOver || res.State.InMenu || res.State.Score != 0 {
		t.Errorf("state after restart = %+v", res.State)
	}
}

func TestGameOverBackToMenu(t *testing.T) {
	g := newTestGame(t, New(), 30, 12)
	g.Step(frame(core.ActionConfirm))
	if _, ok := runUntil(g, 5000, func(r core.StepResult) bool { return r.State.GameOver }); !ok {
		t.Fatal("run never ended")
	}

	res := g.Step(frame(core.ActionBack))
	if !res.State.InMenu {
		t.Errorf("state after back = %+v, want menu", res.State)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := newTestGame(t, New(), 6, 4)
	res := g.Step(frame(core.ActionConfirm))
	if !res.State.InMenu {
		t.Error("a game that does not fit must not start")
	}

	screen := core.NewScreen(6, 4)
	g.Render(screen)

	g.Resize(80, 24)
	res = g.Step(frame(core.ActionConfirm))
	if res.State.InMenu {
		t.Error("game should start after growing the window")
	}
}

func TestResizeKeepsRun(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	g.Step(frame(core.ActionConfirm))
	runUntil(g, 60, func(r core.StepResult) bool { return r.State.Ticks > 0 })
	before := g.Snapshot()

	g.Resize(100, 30)
	if !reflect.DeepEqual(g.Snapshot(), before) {
		t.Error("resize changed the run")
	}

	// Too small: the run freezes instead of resetting.
	g.Resize(20, 10)
	for n := 0; n < 120; n++ {
		g.Step(frame())
	}
	if !reflect.DeepEqual(g.Snapshot(), before) {
		t.Error("run advanced while the board did not fit")
	}

	g.Resize(80, 24)
	runUntil(g, 60, func(r core.StepResult) bool { return r.State.Ticks > before.Tick })
	if g.State().Ticks <= before.Tick {
		t.Error("run did not continue after resizing back")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "Enter to start") {
		t.Errorf("menu not rendered:\n%s", out)
	}

	g.Step(frame(core.ActionConfirm))
	g.Render(screen)
	snap := g.Snapshot()
	head, _ := snap.Head()
	if r := screen.Get(g.board.X+1+head.X, g.board.Y+1+head.Y); r != runeHead {
		t.Errorf("head rune = %q, want %q", r, runeHead)
	}
	if r := screen.Get(g.board.X+1+snap.Food.X, g.board.Y+1+snap.Food.Y); r != runeFood {
		t.Errorf("food rune = %q, want %q", r, runeFood)
	}
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD = %q", screen.Row(0))
	}

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("pause overlay missing")
	}
}
