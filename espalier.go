package espalier

import (
	"log/slog"

	"github.com/aretw0/espalier/internal/runtime"
	"github.com/aretw0/espalier/pkg/domain"
)

// Re-export the domain vocabulary so simple consumers only import the root
// package.
type (
	// StateID uniquely identifies a state within a chart.
	StateID = domain.StateID
	// Event is the opaque value offered to run hooks.
	Event = domain.Event
	// Result tells the dispatch loop whether a run hook consumed the event.
	Result = domain.Result
	// Instance is the machine surface available to hooks.
	Instance = domain.Instance
	// Handler is the capability set of one state.
	Handler = domain.Handler
	// Hooks adapts plain functions to Handler.
	Hooks = domain.Hooks
	// Base provides no-op hook defaults for embedding.
	Base = domain.Base
	// Chart is the immutable state hierarchy.
	Chart = domain.Chart
	// LifecycleHooks defines optional observability callbacks.
	LifecycleHooks = domain.LifecycleHooks
	// StateEvent reports one entry or exit hook invocation.
	StateEvent = domain.StateEvent
	// TransitionEvent reports one completed transition.
	TransitionEvent = domain.TransitionEvent
	// DispatchEvent reports one finished dispatch cycle.
	DispatchEvent = domain.DispatchEvent
	// TerminateEvent reports a termination request.
	TerminateEvent = domain.TerminateEvent
	// Machine is one running instance over a chart.
	Machine = runtime.Machine
	// Option configures a machine.
	Option = runtime.Option
)

const (
	// Propagate offers the event to the parent state's run hook next.
	Propagate = domain.Propagate
	// Handled stops propagation for this dispatch cycle.
	Handled = domain.Handled
)

// DefaultTransitionLimit is the per-dispatch bound on processed transitions.
const DefaultTransitionLimit = runtime.DefaultTransitionLimit

// Sentinel errors returned by machine operations.
var (
	ErrInvalidTarget            = domain.ErrInvalidTarget
	ErrIllegalTransitionContext = domain.ErrIllegalTransitionContext
	ErrDisjointHierarchy        = domain.ErrDisjointHierarchy
	ErrTransitionLoopExceeded   = domain.ErrTransitionLoopExceeded
	ErrNotInitialized           = domain.ErrNotInitialized
)

// New creates a machine over chart. Charts are immutable and may back any
// number of machines; each machine's execution context is exclusively its
// own.
func New(chart *Chart, opts ...Option) *Machine {
	return runtime.New(chart, opts...)
}

// WithLogger sets a structured logger for transition and dispatch tracing.
func WithLogger(log *slog.Logger) Option {
	return runtime.WithLogger(log)
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks LifecycleHooks) Option {
	return runtime.WithLifecycleHooks(hooks)
}

// WithTransitionLimit overrides the per-dispatch transition bound.
func WithTransitionLimit(n int) Option {
	return runtime.WithTransitionLimit(n)
}
