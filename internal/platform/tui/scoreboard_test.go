package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

func TestScoreboardShowsRuns(t *testing.T) {
	registerFakeGame()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, r := range []storage.Result{
		{GameID: "fake", Score: 7, Outcome: "wall", Length: 10},
		{GameID: "fake", Score: 12, Outcome: "cleared", Length: 15},
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, "fake", 80, 24)
	if m.variants[m.current].ID != "fake" {
		t.Fatalf("opened on %q, want fake", m.variants[m.current].ID)
	}

	view := ansi.Strip(m.View())
	for _, want := range []string{"HIGH SCORES", "Fake", "Runs 2", "Best 12", "Clears 1", "cleared"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if first := m.table.Rows()[0]; first[1] != "12" {
		t.Errorf("first row = %v, want score 12", first)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	registerFakeGame()
	m := NewScoreboardModel(nil, "fake", 80, 24)

	if view := m.View(); !strings.Contains(view, "No runs recorded yet.") {
		t.Errorf("empty view:\n%s", view)
	}

	// Cycling wraps around whatever the number of variants is.
	start := m.current
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.current != start {
		t.Errorf("current = %d after next+prev, want %d", m.current, start)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || next.(ScoreboardModel).View() != "" {
		t.Error("esc should quit the scoreboard")
	}
}
