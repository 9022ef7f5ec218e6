package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// counterValue returns the value of the single series in family name with the given label.
func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == label && l.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.Observe("snake", core.StepResult{Events: []core.Event{{Kind: core.EventStarted}}})
	r.Observe("snake", core.StepResult{Events: []core.Event{{Kind: core.EventScored, Points: 1}}})
	r.Observe("snake", core.StepResult{Events: []core.Event{{Kind: core.EventScored, Points: 1}}})
	r.Observe("snake", core.StepResult{
		State:  core.GameState{Score: 2, Length: 5, GameOver: true},
		Events: []core.Event{{Kind: core.EventGameOver, Reason: "wall"}},
	})
	r.Observe("snake", core.StepResult{})

	if got := counterValue(t, reg, "snake_runs_started_total", "game", "snake"); got != 1 {
		t.Errorf("started = %v, want 1", got)
	}
	if got := counterValue(t, reg, "snake_food_eaten_total", "game", "snake"); got != 2 {
		t.Errorf("food = %v, want 2", got)
	}
	if got := counterValue(t, reg, "snake_runs_finished_total", "outcome", "wall"); got != 1 {
		t.Errorf("finished{wall} = %v, want 1", got)
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.Observe("snake", core.StepResult{Events: []core.Event{{Kind: core.EventStarted}}})
	r.SessionOpened()
	r.SessionClosed()
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)
	r.SessionOpened()

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), "snake_ssh_sessions 1") {
		t.Errorf("sessions gauge missing from output:\n%s", body)
	}
}
