package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// #region metrics-struct
// Metrics holds the engine's Prometheus collectors. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	SessionsStarted  *prometheus.CounterVec
	TurnsProcessed   *prometheus.CounterVec
	TrustDelta       prometheus.Histogram
	LayersRevealed   *prometheus.CounterVec
	DiscoveryActions *prometheus.CounterVec
	Terminations     *prometheus.CounterVec
}

// #endregion metrics-struct

// #region constructor
// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SessionsStarted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disclosure_sessions_started_total",
				Help: "Sessions started, by conversation kind",
			},
			[]string{"kind"},
		),
		TurnsProcessed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disclosure_turns_processed_total",
				Help: "Conversation turns processed, by speaker",
			},
			[]string{"speaker"},
		),
		TrustDelta: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "disclosure_trust_delta",
				Help:    "Trust change applied per event",
				Buckets: []float64{-10, -5, -2, 0, 2, 5, 10, 20, 40, 80},
			},
		),
		LayersRevealed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disclosure_layers_revealed_total",
				Help: "Information layers revealed, by category",
			},
			[]string{"category"},
		),
		DiscoveryActions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disclosure_discovery_actions_total",
				Help: "Completed discovery actions",
			},
			[]string{"action", "fallback"}, // fallback: true, false
		),
		Terminations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disclosure_terminations_total",
				Help: "Cold sessions terminated, by reason",
			},
			[]string{"reason"},
		),
	}
}

// #endregion constructor

// #region observe
func (m *Metrics) SessionStarted(kind string) {
	if m == nil {
		return
	}
	m.SessionsStarted.WithLabelValues(kind).Inc()
}

func (m *Metrics) Turn(speaker string, delta int) {
	if m == nil {
		return
	}
	m.TurnsProcessed.WithLabelValues(speaker).Inc()
	m.TrustDelta.Observe(float64(delta))
}

func (m *Metrics) Revealed(category string) {
	if m == nil {
		return
	}
	m.LayersRevealed.WithLabelValues(category).Inc()
}

func (m *Metrics) Discovery(action string, fallback bool, delta int) {
	if m == nil {
		return
	}
	fb := "false"
	if fallback {
		fb = "true"
	}
	m.DiscoveryActions.WithLabelValues(action, fb).Inc()
	m.TrustDelta.Observe(float64(delta))
}

func (m *Metrics) Terminated(reason string) {
	if m == nil {
		return
	}
	m.Terminations.WithLabelValues(reason).Inc()
}

// #endregion observe
