// Package runtime implements the espalier execution core: the per-machine
// execution context, the transition engine and the event dispatch loop.
//
// A Machine is single-threaded and cooperative. Every hook runs to completion
// before control returns to the dispatch loop, and the machine performs no
// internal synchronization: callers that feed events from several goroutines
// must serialize Initialize/Dispatch/Transition with an external mutex.
package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
)

// DefaultTransitionLimit bounds how many transitions one dispatch cycle may
// process before the machine gives up with ErrTransitionLoopExceeded. It
// converts a transition cycle that never stabilizes into a detectable
// configuration error instead of an infinite loop.
const DefaultTransitionLimit = 100

// phase tracks what kind of hook the machine is currently inside. Transition
// requests behave differently per phase: immediate when idle, deferred during
// run and entry hooks, illegal during exit hooks.
type phase uint8

const (
	phaseIdle phase = iota
	phaseRun
	phaseEntry
	phaseExit
)

// Machine is one running instance over an immutable chart. The zero value is
// not usable; construct with New and call Initialize before dispatching.
type Machine struct {
	chart *domain.Chart
	log   *slog.Logger
	hooks domain.LifecycleHooks
	limit int

	// Execution context. current/previous/executing are arena indices,
	// domain.None when unset.
	current   int
	previous  int
	executing int
	payload   any

	// Pending-transition slot. A request issued from a run or entry hook is
	// parked here and drained after the hook chain unwinds.
	pendingTarget int
	pendingSource int
	hasPending    bool

	phase               phase
	initialized         bool
	terminated          bool
	terminateVal        int32
	handled             bool
	transitionRequested bool
	failure             error
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets a structured logger for transition and dispatch tracing.
func WithLogger(log *slog.Logger) Option {
	return func(m *Machine) {
		if log != nil {
			m.log = log
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithTransitionLimit overrides the per-dispatch transition bound.
func WithTransitionLimit(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.limit = n
		}
	}
}

// New creates a machine over chart. The chart may be shared between machines;
// each machine owns its execution context exclusively.
func New(chart *domain.Chart, opts ...Option) *Machine {
	m := &Machine{
		chart:         chart,
		log:           logging.NewNop(),
		limit:         DefaultTransitionLimit,
		current:       domain.None,
		previous:      domain.None,
		executing:     domain.None,
		pendingTarget: domain.None,
		pendingSource: domain.None,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize resolves target down its initial chain, runs the entry chain
// from the top of that tree to the resolved leaf, and installs the payload.
// Entry hooks may request transitions; they are drained before Initialize
// returns. A termination request during entry is honored and is not an
// error.
func (m *Machine) Initialize(target domain.StateID, payload any) error {
	if target == "" {
		return domain.ErrInvalidTarget
	}
	idx, ok := m.chart.Index(target)
	if !ok {
		return fmt.Errorf("initialize %q: %w", target, domain.ErrInvalidTarget)
	}

	leaf := resolveInitialLeaf(m.chart, idx)
	top := childUnder(m.chart, leaf, domain.None)

	m.current = leaf
	m.previous = domain.None
	m.executing = leaf
	m.payload = payload
	m.terminated = false
	m.terminateVal = 0
	m.handled = false
	m.transitionRequested = false
	m.hasPending = false
	m.failure = nil
	m.initialized = true

	// The top of the tree is entered explicitly: the entry chain below
	// starts at its direct child, there is no prior topmost to exclude it.
	m.phase = phaseEntry
	m.enter(top)
	if m.terminated {
		m.executing = m.current
		m.phase = phaseIdle
		return nil
	}
	m.runEntryChain(leaf, top)
	m.executing = m.current
	m.phase = phaseIdle
	if m.terminated {
		return nil
	}

	m.log.Debug("initialized", "state", m.chart.ID(leaf))
	return m.drainPending()
}

// Terminate requests shutdown with the given value. No further hooks run
// once it is set; the flag is sticky and the value is reported by every
// subsequent Dispatch.
func (m *Machine) Terminate(val int32) {
	m.terminated = true
	m.terminateVal = val
	if m.hooks.OnTerminate != nil {
		m.hooks.OnTerminate(&domain.TerminateEvent{State: m.chart.ID(m.executing), Value: val})
	}
	m.log.Debug("terminate requested", "state", m.chart.ID(m.executing), "value", val)
}

// Transition requests a transition to target. Called from a run or entry
// hook the request is deferred until the in-progress cycle settles; called
// from an exit hook it fails with ErrIllegalTransitionContext and has no
// side effects; called outside any hook it is applied immediately.
func (m *Machine) Transition(target domain.StateID) error {
	if !m.initialized {
		return domain.ErrNotInitialized
	}
	if m.failure != nil {
		return m.failure
	}
	if target == "" {
		return domain.ErrInvalidTarget
	}
	dest, ok := m.chart.Index(target)
	if !ok {
		return fmt.Errorf("transition to %q: %w", target, domain.ErrInvalidTarget)
	}
	if m.phase == phaseExit {
		return domain.ErrIllegalTransitionContext
	}
	if m.terminated {
		return nil
	}

	source := m.executing
	if source == domain.None {
		source = m.current
	}
	m.pendingTarget = dest
	m.pendingSource = source
	m.hasPending = true
	m.transitionRequested = true

	if m.phase == phaseIdle {
		return m.drainPending()
	}
	return nil
}

// Current returns the active leaf state.
func (m *Machine) Current() domain.StateID { return m.chart.ID(m.current) }

// Previous returns the leaf active before the last completed transition.
func (m *Machine) Previous() domain.StateID { return m.chart.ID(m.previous) }

// Executing returns the state whose hook is presently running; outside of a
// hook it equals Current.
func (m *Machine) Executing() domain.StateID { return m.chart.ID(m.executing) }

// Terminated reports whether termination has been requested.
func (m *Machine) Terminated() bool { return m.terminated }

// TerminationValue returns the value passed to Terminate, 0 while running.
func (m *Machine) TerminationValue() int32 { return m.terminateVal }

// Payload returns the application payload installed at initialization.
func (m *Machine) Payload() any { return m.payload }

// Chart returns the immutable chart backing this machine.
func (m *Machine) Chart() *domain.Chart { return m.chart }

var _ domain.Instance = (*Machine)(nil)

// fail records a fatal configuration error. The machine stops running hooks
// and every subsequent operation reports the same error.
func (m *Machine) fail(err error) {
	m.failure = err
	m.terminated = true
	m.log.Error("machine failed", "err", err)
}
