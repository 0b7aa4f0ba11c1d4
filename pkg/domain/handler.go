package domain

// StateID uniquely identifies a state within a chart.
type StateID string

// Event is the opaque value offered to run hooks. The engine never inspects
// it; it is passed unchanged through the whole ancestor-propagation walk.
// Use pkg/match for typed dispatch on top of it.
type Event = any

// Result tells the dispatch loop whether a run hook consumed the event.
type Result int

const (
	// Propagate offers the event to the parent state's run hook next.
	Propagate Result = iota
	// Handled stops propagation for this dispatch cycle.
	Handled
)

// String returns the string representation of a Result.
func (r Result) String() string {
	switch r {
	case Propagate:
		return "propagate"
	case Handled:
		return "handled"
	default:
		return "unknown"
	}
}

// Instance is the surface a hook may call back into while it runs. It is
// implemented by the running machine. Transition requests issued from run or
// entry hooks are deferred until the hook chain unwinds; issuing one from an
// exit hook fails with ErrIllegalTransitionContext.
type Instance interface {
	// Transition requests a transition to target.
	Transition(target StateID) error
	// Terminate requests shutdown with the given value. It takes effect as
	// soon as the executing hook returns and is sticky afterwards.
	Terminate(val int32)
	// Current returns the active leaf state.
	Current() StateID
	// Previous returns the leaf active before the last completed transition.
	Previous() StateID
	// Executing returns the state whose hook is presently running.
	Executing() StateID
	// Terminated reports whether termination has been requested.
	Terminated() bool
	// Payload returns the application payload installed at initialization.
	Payload() any
}

// Handler is the capability set of one state. The engine invokes Entry and
// Exit during transitions and Run during event dispatch. Embed Base to get
// no-op defaults for the hooks a state does not care about.
type Handler interface {
	Entry(m Instance)
	Exit(m Instance)
	Run(m Instance, ev Event) Result
}

// Base provides no-op implementations of every hook.
type Base struct{}

func (Base) Entry(Instance)             {}
func (Base) Exit(Instance)              {}
func (Base) Run(Instance, Event) Result { return Propagate }

// Hooks adapts plain functions to Handler. Nil fields are no-ops; a nil
// OnRun propagates.
type Hooks struct {
	OnEntry func(Instance)
	OnExit  func(Instance)
	OnRun   func(Instance, Event) Result
}

func (h Hooks) Entry(m Instance) {
	if h.OnEntry != nil {
		h.OnEntry(m)
	}
}

func (h Hooks) Exit(m Instance) {
	if h.OnExit != nil {
		h.OnExit(m)
	}
}

func (h Hooks) Run(m Instance, ev Event) Result {
	if h.OnRun != nil {
		return h.OnRun(m, ev)
	}
	return Propagate
}
