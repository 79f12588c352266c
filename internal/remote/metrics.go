package remote

import (
	"net/http"

	"github.com/lox/timestables/internal/quiz"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "timestables"

// Metrics counts bridge and game activity. It subscribes to every session
// engine and is served at /metrics.
type Metrics struct {
	registry *prometheus.Registry

	connections   prometheus.Counter
	rejected      prometheus.Counter
	active        prometheus.Gauge
	gamesStarted  prometheus.Counter
	gamesFinished prometheus.Counter
	guesses       *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		connections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "connections_total",
			Help:      "Websocket clients accepted.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "connections_rejected_total",
			Help:      "Websocket clients turned away because a session was active.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_sessions",
			Help:      "Connected websocket clients.",
		}),
		gamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "games_started_total",
			Help:      "Games started.",
		}),
		gamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "games_finished_total",
			Help:      "Games played through to the last question.",
		}),
		guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "guesses_total",
			Help:      "Guesses submitted, by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.connections,
		m.rejected,
		m.active,
		m.gamesStarted,
		m.gamesFinished,
		m.guesses,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// OnEvent records game activity from an engine.
func (m *Metrics) OnEvent(event quiz.GameEvent) {
	switch e := event.(type) {
	case quiz.StateChangedEvent:
		switch e.Intent {
		case "start":
			m.gamesStarted.Inc()
		case "submit_guess":
			result := "wrong"
			if e.Snapshot.LastGuessCorrect {
				result = "correct"
			}
			m.guesses.WithLabelValues(result).Inc()
		}
	case quiz.GameFinishedEvent:
		m.gamesFinished.Inc()
	}
}

func (m *Metrics) connected() {
	m.connections.Inc()
	m.active.Inc()
}

func (m *Metrics) disconnected() {
	m.active.Dec()
}
