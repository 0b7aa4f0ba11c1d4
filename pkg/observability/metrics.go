package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/espalier/pkg/domain"
)

// Metrics exposes machine lifecycle counters to Prometheus.
type Metrics struct {
	dispatches   *prometheus.CounterVec
	hookCalls    *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	terminations prometheus.Counter
}

// NewMetrics creates and registers the machine metrics under the given
// namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatches_total",
				Help:      "Dispatched events by outcome",
			},
			[]string{"outcome"},
		),
		hookCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hook_invocations_total",
				Help:      "Entry/exit hook invocations by state",
			},
			[]string{"state", "kind"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Completed transitions by source and destination leaf",
			},
			[]string{"from", "to"},
		),
		terminations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "terminations_total",
				Help:      "Termination requests",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.dispatches, m.hookCalls, m.transitions, m.terminations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns the lifecycle hook set feeding these metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(e *domain.StateEvent) {
			m.hookCalls.WithLabelValues(string(e.State), string(e.Kind)).Inc()
		},
		OnStateExit: func(e *domain.StateEvent) {
			m.hookCalls.WithLabelValues(string(e.State), string(e.Kind)).Inc()
		},
		OnTransition: func(e *domain.TransitionEvent) {
			m.transitions.WithLabelValues(string(e.From), string(e.To)).Inc()
		},
		OnDispatch: func(e *domain.DispatchEvent) {
			outcome := "propagated"
			if e.Handled {
				outcome = "handled"
			}
			m.dispatches.WithLabelValues(outcome).Inc()
		},
		OnTerminate: func(e *domain.TerminateEvent) {
			m.terminations.Inc()
		},
	}
}
