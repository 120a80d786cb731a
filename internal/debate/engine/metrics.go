package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks phase execution outcomes and turn volume.
type Metrics struct {
	phases        *prometheus.CounterVec
	turns         *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
}

// NewMetrics registers engine metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		phases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "debate_phases_total",
			Help: "Executed phases by phase and outcome.",
		}, []string{"phase", "outcome"}),
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "debate_turns_total",
			Help: "Committed turns by role and round type.",
		}, []string{"role", "round_type"}),
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "debate_phase_duration_seconds",
			Help:    "Wall-clock duration of phase execution.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"phase"}),
	}
	reg.MustRegister(m.phases, m.turns, m.phaseDuration)
	return m
}

func (m *Metrics) observePhase(phase Phase, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.phases.WithLabelValues(string(phase), outcome).Inc()
	m.phaseDuration.WithLabelValues(string(phase)).Observe(elapsed.Seconds())
}

func (m *Metrics) observeTurn(role, roundType string) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(role, roundType).Inc()
}
