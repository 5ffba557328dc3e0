package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for sub-agent launches.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	LaunchesTotal         prometheus.Counter
	LaunchesRejectedTotal prometheus.Counter
	LaunchDuration        prometheus.Histogram
	AgentOutcomesTotal    *prometheus.CounterVec
	AgentTokens           prometheus.Histogram
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		LaunchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swarm_launches_total",
			Help: "Total number of sub-agent launch requests that started runners",
		}),
		LaunchesRejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swarm_launches_rejected_total",
			Help: "Total number of launch requests rejected as nested launches",
		}),
		LaunchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "swarm_launch_duration_seconds",
			Help:    "Wall time from spawning the first runner to the last outcome",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		AgentOutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swarm_agent_outcomes_total",
				Help: "Sub-agent outcomes by kind",
			},
			[]string{"outcome"},
		),
		AgentTokens: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "swarm_agent_tokens",
			Help:    "Conversation size of each sub-agent when it finished",
			Buckets: prometheus.ExponentialBuckets(256, 2, 12),
		}),
	}

	registry.MustRegister(
		m.LaunchesTotal,
		m.LaunchesRejectedTotal,
		m.LaunchDuration,
		m.AgentOutcomesTotal,
		m.AgentTokens,
	)
	return m
}

func (m *Metrics) RecordLaunch() {
	if m == nil {
		return
	}
	m.LaunchesTotal.Inc()
}

func (m *Metrics) RecordRejected() {
	if m == nil {
		return
	}
	m.LaunchesRejectedTotal.Inc()
}

func (m *Metrics) RecordLaunchDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.LaunchDuration.Observe(d.Seconds())
}

func (m *Metrics) RecordOutcome(outcome string, tokens int) {
	if m == nil {
		return
	}
	m.AgentOutcomesTotal.WithLabelValues(outcome).Inc()
	m.AgentTokens.Observe(float64(tokens))
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
