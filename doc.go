/*
Package espalier is a hierarchical state machine (HSM) engine: a UML-statechart
style control-flow core for applications that declare a tree of states and
drive it with events.

The engine owns the hard part: computing the boundary between transition
source and destination, running ordered exit/entry chains, bubbling unhandled
events up the ancestor chain, descending into default children of composite
states, and aborting safely when a hook requests termination. State bodies,
event representation and scheduling stay with the application.

# Concept

A chart is an immutable tree of states built once at configuration time, via
the fluent builder (pkg/dsl) or a YAML definition (pkg/schema). Each state
carries up to three hooks: entry, exit, and run. A machine is one running
instance over a chart: it tracks the active leaf and applies transitions with
well-defined ordering. Exits fire child before parent up to (excluding) the
boundary; entries fire parent before child down to the resolved leaf.

# Usage

	b := dsl.New()
	op := b.State("operational").
		OnEntry(func(m espalier.Instance) { log.Println("power on") })
	op.State("idle").
		Run(func(m espalier.Instance, ev espalier.Event) espalier.Result {
			if ev == "work" {
				_ = m.Transition("busy")
				return espalier.Handled
			}
			return espalier.Propagate
		})
	op.State("busy")

	chart, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	m := espalier.New(chart)
	if err := m.Initialize("operational", nil); err != nil {
		log.Fatal(err)
	}
	val, err := m.Dispatch("work")

Hooks may request transitions; requests issued mid-hook are deferred and
applied after the current cycle settles, bounded so a cycle of transitions
that never stabilizes fails with ErrTransitionLoopExceeded instead of
hanging. Hooks may also call Terminate, which stops the machine immediately
and permanently; Dispatch then keeps returning the stored value.

# Concurrency

A machine is single-threaded and cooperative. It holds no locks; if several
goroutines must feed events, the caller serializes access with an external
mutex. This is a hard precondition, not a suggestion.
*/
package espalier
