package sidecar

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Spawn outcomes reported to a Recorder
const (
	OutcomeStarted  = "started"
	OutcomeFailed   = "failed"
	OutcomeAbsent   = "absent"
	OutcomeDisabled = "disabled"
)

// Recorder receives supervisor lifecycle observations
type Recorder interface {
	RecordSpawn(outcome string)
	UpdateProcessStatus(running bool)
	RecordStop(err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordSpawn(string)       {}
func (nopRecorder) UpdateProcessStatus(bool) {}
func (nopRecorder) RecordStop(error)         {}

// Metrics holds the Prometheus collectors for the supervisor
type Metrics struct {
	spawnAttempts  *prometheus.CounterVec
	processRunning prometheus.Gauge
	stopRequests   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates supervisor metrics on a private registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		spawnAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sidecar_spawn_attempts_total",
				Help: "Sidecar startup decisions by outcome",
			},
			[]string{"outcome"},
		),

		processRunning: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sidecar_process_running",
				Help: "Whether a sidecar process is currently supervised (1) or not (0)",
			},
		),

		stopRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sidecar_stop_requests_total",
				Help: "Kill requests issued against the sidecar process",
			},
			[]string{"result"},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.spawnAttempts,
		m.processRunning,
		m.stopRequests,
	)

	return m
}

// RecordSpawn counts a startup decision
func (m *Metrics) RecordSpawn(outcome string) {
	m.spawnAttempts.WithLabelValues(outcome).Inc()
}

// UpdateProcessStatus sets the running gauge
func (m *Metrics) UpdateProcessStatus(running bool) {
	if running {
		m.processRunning.Set(1)
	} else {
		m.processRunning.Set(0)
	}
}

// RecordStop counts a kill request
func (m *Metrics) RecordStop(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.stopRequests.WithLabelValues(result).Inc()
}

// Handler returns an HTTP handler exposing the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
