package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Mutation outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeNoop     = "noop"
	OutcomeRejected = "rejected"
)

// Store operation outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeAbsent    = "absent"
	OutcomeMalformed = "malformed"
	OutcomeError     = "error"
)

// Metrics exposes Prometheus collectors for the configuration engine and the
// settings store. A nil *Metrics is valid and records nothing.
type Metrics struct {
	mutations       *prometheus.CounterVec
	storeOps        *prometheus.CounterVec
	initializations *prometheus.CounterVec
}

// MustNewMetrics constructs and registers the collectors. Registration errors
// panic, mirroring promauto. Tests should pass a fresh prometheus.Registry.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dashboard",
				Name:      "mutations_total",
				Help:      "Widget configuration mutations by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		storeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dashboard",
				Name:      "store_operations_total",
				Help:      "Settings store loads and saves by backend and outcome.",
			},
			[]string{"backend", "operation", "outcome"},
		),
		initializations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dashboard",
				Name:      "initializations_total",
				Help:      "Engine initializations by state source.",
			},
			[]string{"source"},
		),
	}
	reg.MustRegister(m.mutations, m.storeOps, m.initializations)
	return m
}

func (m *Metrics) Mutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) StoreOp(backend, operation, outcome string) {
	if m == nil {
		return
	}
	m.storeOps.WithLabelValues(backend, operation, outcome).Inc()
}

func (m *Metrics) Initialized(source string) {
	if m == nil {
		return
	}
	m.initializations.WithLabelValues(source).Inc()
}
