package observability

import "github.com/aretw0/espalier/pkg/domain"

// Combine fans lifecycle events out to every given hook set, in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(e *domain.StateEvent) {
			for _, h := range hooks {
				if h.OnStateEnter != nil {
					h.OnStateEnter(e)
				}
			}
		},
		OnStateExit: func(e *domain.StateEvent) {
			for _, h := range hooks {
				if h.OnStateExit != nil {
					h.OnStateExit(e)
				}
			}
		},
		OnTransition: func(e *domain.TransitionEvent) {
			for _, h := range hooks {
				if h.OnTransition != nil {
					h.OnTransition(e)
				}
			}
		},
		OnDispatch: func(e *domain.DispatchEvent) {
			for _, h := range hooks {
				if h.OnDispatch != nil {
					h.OnDispatch(e)
				}
			}
		},
		OnTerminate: func(e *domain.TerminateEvent) {
			for _, h := range hooks {
				if h.OnTerminate != nil {
					h.OnTerminate(e)
				}
			}
		},
	}
}
