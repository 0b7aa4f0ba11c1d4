package domain

// HookKind identifies which hook of a state fired.
type HookKind string

const (
	HookEntry HookKind = "entry"
	HookExit  HookKind = "exit"
	HookRun   HookKind = "run"
)

// StateEvent reports an entry or exit hook about to complete.
type StateEvent struct {
	State StateID
	Kind  HookKind
	Depth int
}

// TransitionEvent reports a completed transition between leaves.
type TransitionEvent struct {
	From StateID
	To   StateID
}

// DispatchEvent reports a completed dispatch cycle.
type DispatchEvent struct {
	State   StateID // leaf that received the event
	Event   Event
	Handled bool
}

// TerminateEvent reports a termination request.
type TerminateEvent struct {
	State StateID // state whose hook requested termination
	Value int32
}

// LifecycleHooks defines optional callbacks for engine observability. They
// fire synchronously on the dispatch path, so they must be cheap and must not
// call back into the machine. Nil callbacks are skipped.
type LifecycleHooks struct {
	OnStateEnter func(*StateEvent)
	OnStateExit  func(*StateEvent)
	OnTransition func(*TransitionEvent)
	OnDispatch   func(*DispatchEvent)
	OnTerminate  func(*TerminateEvent)
}
