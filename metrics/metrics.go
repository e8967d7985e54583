// Package metrics exposes Prometheus collectors reporting engine activity:
// tool executions, subtask durations, orchestration outcomes and active
// runs. Collectors register against an injectable Registerer so tests can
// supply a fresh registry.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the engine's Prometheus collectors.
type Metrics struct {
	toolExecutions  *prometheus.CounterVec
	subtaskDuration *prometheus.HistogramVec
	orchestrations  *prometheus.CounterVec
	activeRuns      prometheus.Gauge
}

var (
	defaultOnce sync.Once
	shared      *Metrics
)

// Default returns the package-level metrics instance registered with the
// global Prometheus registry. Collectors are created only once to avoid
// duplicate registration panics when the engine is instantiated multiple
// times.
func Default() *Metrics {
	defaultOnce.Do(func() {
		shared = MustNew(prometheus.DefaultRegisterer)
	})
	return shared
}

// MustNew constructs a Metrics instance using the provided registerer.
// Registration errors panic, mirroring promauto semantics, so configuration
// bugs surface early. Pass a fresh registry in tests.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	toolExecutions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentormesh",
			Subsystem: "tools",
			Name:      "executions_total",
			Help:      "Total number of tool executions by tool and outcome.",
		},
		[]string{"tool", "status"},
	)
	subtaskDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mentormesh",
			Subsystem: "orchestrator",
			Name:      "subtask_duration_seconds",
			Help:      "Duration of subtask executions by agent and outcome.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"agent", "status"},
	)
	orchestrations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentormesh",
			Subsystem: "orchestrator",
			Name:      "runs_total",
			Help:      "Total number of orchestration runs by routing path and outcome.",
		},
		[]string{"path", "status"},
	)
	activeRuns := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mentormesh",
			Subsystem: "orchestrator",
			Name:      "runs_active",
			Help:      "Number of orchestration runs currently executing.",
		},
	)

	for _, c := range []prometheus.Collector{toolExecutions, subtaskDuration, orchestrations, activeRuns} {
		reg.MustRegister(c)
	}

	return &Metrics{
		toolExecutions:  toolExecutions,
		subtaskDuration: subtaskDuration,
		orchestrations:  orchestrations,
		activeRuns:      activeRuns,
	}
}

// ObserveToolExecution implements tool.Telemetry.
func (m *Metrics) ObserveToolExecution(tool string, _ time.Duration, success bool) {
	m.toolExecutions.WithLabelValues(tool, statusLabel(success)).Inc()
}

// ObserveSubtask records one finished subtask execution.
func (m *Metrics) ObserveSubtask(agent string, duration time.Duration, success bool) {
	m.subtaskDuration.WithLabelValues(agent, statusLabel(success)).Observe(duration.Seconds())
}

// ObserveOrchestration records one finished orchestration run.
func (m *Metrics) ObserveOrchestration(path string, success bool) {
	m.orchestrations.WithLabelValues(path, statusLabel(success)).Inc()
}

// RunStarted increments the active run gauge and returns a closure that
// decrements it.
func (m *Metrics) RunStarted() func() {
	m.activeRuns.Inc()
	return m.activeRuns.Dec
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
