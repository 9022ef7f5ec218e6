// Package metrics exports game activity as prometheus collectors.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Recorder turns game events into prometheus series.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	started  *prometheus.CounterVec
	finished *prometheus.CounterVec
	food     *prometheus.CounterVec
	scores   *prometheus.HistogramVec
	lengths  *prometheus.HistogramVec
	sessions prometheus.Gauge
}

// New creates a recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "snake",
				Subsystem: "runs",
				Name:      "started_total",
				Help:      "Runs started.",
			},
			[]string{"game"},
		),
		finished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "snake",
				Subsystem: "runs",
				Name:      "finished_total",
				Help:      "Runs finished, by outcome.",
			},
			[]string{"game", "outcome"},
		),
		food: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "snake",
				Name:      "food_eaten_total",
				Help:      "Food items eaten.",
			},
			[]string{"game"},
		),
		scores: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "snake",
				Subsystem: "runs",
				Name:      "score",
				Help:      "Final score of finished runs.",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"game"},
		),
		lengths: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "snake",
				Subsystem: "runs",
				Name:      "length",
				Help:      "Snake length at the end of finished runs.",
				Buckets:   prometheus.ExponentialBuckets(2, 2, 10),
			},
			[]string{"game"},
		),
		sessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "snake",
				Subsystem: "ssh",
				Name:      "sessions",
				Help:      "Open SSH sessions.",
			},
		),
	}
	reg.MustRegister(r.started, r.finished, r.food, r.scores, r.lengths, r.sessions)
	return r
}

// Observe records the events of one frame.
func (r *Recorder) Observe(gameID string, res core.StepResult) {
	if r == nil {
		return
	}
	for _, e := range res.Events {
		switch e.Kind {
		case core.EventStarted:
			r.started.WithLabelValues(gameID).Inc()
		case core.EventScored:
			r.food.WithLabelValues(gameID).Inc()
		case core.EventGameOver:
			r.finished.WithLabelValues(gameID, e.Reason).Inc()
			r.scores.WithLabelValues(gameID).Observe(float64(res.State.Score))
			r.lengths.WithLabelValues(gameID).Observe(float64(res.State.Length))
		}
	}
}

// SessionOpened tracks a new SSH session.
func (r *Recorder) SessionOpened() {
	if r != nil {
		r.sessions.Inc()
	}
}

// SessionClosed tracks the end of an SSH session.
func (r *Recorder) SessionClosed() {
	if r != nil {
		r.sessions.Dec()
	}
}

// Handler serves the collectors gathered from g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr in the background.
// Listen errors are logged, not returned, so metrics never stop the game server.
func Serve(addr string, g prometheus.Gatherer, logger *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting prometheus exporter", "addr", addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("prometheus failed to listen", "error", err)
		}
	}()
	return srv
}
