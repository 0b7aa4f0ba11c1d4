package domain

import "errors"

// Runtime failures returned by machine operations.
var (
	// ErrInvalidTarget is returned when an empty or unregistered state is
	// passed to Initialize or Transition.
	ErrInvalidTarget = errors.New("invalid transition target")

	// ErrIllegalTransitionContext is returned when a transition is requested
	// from inside an exit hook. The in-progress transition is unaffected.
	ErrIllegalTransitionContext = errors.New("transition requested during exit phase")

	// ErrDisjointHierarchy is returned when a transition's source and
	// destination share no common ancestor. This is a chart defect.
	ErrDisjointHierarchy = errors.New("states share no common ancestor")

	// ErrTransitionLoopExceeded is returned when the pending-transition drain
	// exceeds the machine's transition limit within one dispatch. The machine
	// is left terminated; the configuration is defective.
	ErrTransitionLoopExceeded = errors.New("transition limit exceeded in a single dispatch")

	// ErrNotInitialized is returned when Dispatch or Transition is called
	// before Initialize succeeded.
	ErrNotInitialized = errors.New("machine not initialized")
)

// Chart construction failures.
var (
	// ErrDuplicateState is returned when two states register the same id.
	ErrDuplicateState = errors.New("duplicate state id")

	// ErrUnknownState is returned when a parent or initial reference names a
	// state that was never declared.
	ErrUnknownState = errors.New("unknown state reference")

	// ErrMissingInitial is returned when a composite state declares no
	// default child, so entering it could not resolve to a leaf.
	ErrMissingInitial = errors.New("composite state has no initial child")

	// ErrInvalidInitial is returned when a state's initial reference is not
	// one of its direct children.
	ErrInvalidInitial = errors.New("initial state is not a direct child")

	// ErrParentCycle is returned when the parent chain does not terminate.
	ErrParentCycle = errors.New("cycle in parent chain")
)
