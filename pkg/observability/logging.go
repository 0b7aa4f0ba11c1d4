package observability

import (
	"log/slog"

	"github.com/aretw0/espalier/pkg/domain"
)

// LogHooks returns lifecycle hooks that write a structured audit trail.
// Hook-level events log at Debug, transitions and terminations at Info.
func LogHooks(log *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(e *domain.StateEvent) {
			log.Debug("state entered", "state", e.State, "depth", e.Depth)
		},
		OnStateExit: func(e *domain.StateEvent) {
			log.Debug("state exited", "state", e.State, "depth", e.Depth)
		},
		OnTransition: func(e *domain.TransitionEvent) {
			log.Info("transition", "from", e.From, "to", e.To)
		},
		OnDispatch: func(e *domain.DispatchEvent) {
			log.Debug("dispatch", "state", e.State, "handled", e.Handled)
		},
		OnTerminate: func(e *domain.TerminateEvent) {
			log.Info("terminated", "state", e.State, "value", e.Value)
		},
	}
}
