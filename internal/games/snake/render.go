package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	runeHead = 'O'
	runeBody = 'o'
	runeFood = '*'
)

// Render draws the current snapshot. It never mutates the machine.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.machine == nil {
		g.renderTooSmall(dst)
		return
	}

	snap := g.machine.Snapshot()
	g.renderHUD(dst, snap)
	g.renderBoard(dst, snap)

	switch snap.Phase {
	case PhaseMenu:
		renderOverlay(dst, core.ColorBrightGreen,
			g.Title(),
			fmt.Sprintf("%dx%d board, best %d", snap.GridW, snap.GridH, g.best),
			"",
			"Arrows/WASD steer  P pause",
			"Enter to start  Q to quit",
		)
	case PhasePaused:
		renderOverlay(dst, core.ColorYellow, "Paused", "P or Enter to resume")
	case PhaseGameOver:
		renderOverlay(dst, outcomeColor(snap.Outcome),
			outcomeTitle(snap.Outcome),
			fmt.Sprintf("Score: %d  Length: %d", snap.Score, snap.Len()),
			"",
			"R restart  Enter menu",
		)
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" %s  Score: %d  Length: %d  Best: %d  Tick: %dms",
		g.Title(), snap.Score, snap.Len(), max(g.best, snap.Score), snap.Interval.Milliseconds())
	dst.DrawColoredText(0, 0, hud, core.ColorCyan)
}

func (g *Game) renderBoard(dst *core.Screen, snap Snapshot) {
	border := core.ColorDefault
	if snap.Boundary == Wrapping {
		border = core.ColorGray
	}
	dst.DrawBox(g.board, border)

	ox := g.board.X + 1
	oy := g.board.Y + 1

	if snap.HasFood {
		dst.SetColored(ox+snap.Food.X, oy+snap.Food.Y, runeFood, core.ColorBrightYellow)
	}

	// Draw tail first so the head stays visible.
	for i := len(snap.Body) - 1; i >= 0; i-- {
		c := snap.Body[i]
		if i == 0 {
			dst.SetColored(ox+c.X, oy+c.Y, runeHead, core.ColorBrightGreen)
		} else {
			dst.SetColored(ox+c.X, oy+c.Y, runeBody, core.ColorGreen)
		}
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	need := "Resize to continue"
	if w, h := g.cfg.Grid.Width, g.cfg.Grid.Height; w > 0 && h > 0 {
		need = fmt.Sprintf("Need %dx%d", w+2, h+hudHeight+2)
	}
	renderOverlay(dst, core.ColorRed, "Window too small", need)
}

// renderOverlay draws a bordered box in the middle of the screen.
func renderOverlay(dst *core.Screen, color core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := core.CenteredRect(dst.Width(), dst.Height(), width+4, len(lines)+2)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	for i, l := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = color
		}
		dst.DrawTextCentered(box.Y+1+i, l, c)
	}
}

func outcomeTitle(o Outcome) string {
	switch o {
	case OutcomeWallCollision:
		return "Game Over: hit the wall"
	case OutcomeSelfCollision:
		return "Game Over: bit yourself"
	case OutcomeCleared:
		return "Board cleared!"
	default:
		return "Game Over"
	}
}

func outcomeColor(o Outcome) core.Color {
	if o == OutcomeCleared {
		return core.ColorBrightYellow
	}
	return core.ColorRed
}
