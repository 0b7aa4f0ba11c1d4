package runtime

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
)

// enter runs the entry hook of state s with the execution cursor on s and
// notifies observers.
func (m *Machine) enter(s int) {
	m.executing = s
	m.chart.Handler(s).Entry(m)
	if m.hooks.OnStateEnter != nil {
		m.hooks.OnStateEnter(&domain.StateEvent{State: m.chart.ID(s), Kind: domain.HookEntry, Depth: m.chart.Depth(s)})
	}
}

// exit runs the exit hook of state s with the execution cursor on s and
// notifies observers.
func (m *Machine) exit(s int) {
	m.executing = s
	m.chart.Handler(s).Exit(m)
	if m.hooks.OnStateExit != nil {
		m.hooks.OnStateExit(&domain.StateEvent{State: m.chart.ID(s), Kind: domain.HookExit, Depth: m.chart.Depth(s)})
	}
}

// runEntryChain enters every state on the path from top (exclusive) down to
// leaf (inclusive), parent before child. A termination request aborts the
// remaining chain; a transition request does not, it stays parked in the
// pending slot until the chain completes.
func (m *Machine) runEntryChain(leaf, top int) {
	if leaf == top {
		return
	}
	for s := childUnder(m.chart, leaf, top); s != domain.None && s != leaf; s = childUnder(m.chart, leaf, s) {
		m.enter(s)
		if m.terminated {
			return
		}
	}
	m.enter(leaf)
}

// applyTransition performs one full transition from the current leaf to dest.
// source is the state that requested it, which matters only for the
// self-transition pair. The ordering contract:
//
//	topmost  = boundary between current leaf and dest, never exited/entered
//	exit     = current leaf up to topmost, child before parent
//	entry    = below topmost down to dest's resolved leaf, parent before child
//
// A termination request from any hook aborts immediately and leaves the
// current pointer untouched: the transition did not complete, and hooks that
// already ran are not undone.
func (m *Machine) applyTransition(source, dest int) error {
	top, err := topmostBetween(m.chart, m.current, dest)
	if err != nil {
		return fmt.Errorf("transition %s -> %s: %w", m.chart.ID(m.current), m.chart.ID(dest), err)
	}

	from := m.current

	m.phase = phaseExit
	for s := m.current; s != domain.None && s != top; s = m.chart.Parent(s) {
		m.exit(s)
		if m.terminated {
			m.abortTransition()
			return nil
		}
	}

	// A state transitioning to itself still gets a full exit/entry pair even
	// though it is its own boundary.
	if source == dest {
		m.exit(dest)
		if m.terminated {
			m.abortTransition()
			return nil
		}
		m.phase = phaseEntry
		m.enter(dest)
		if m.terminated {
			m.abortTransition()
			return nil
		}
	}

	m.phase = phaseEntry
	leaf := resolveInitialLeaf(m.chart, dest)
	m.runEntryChain(leaf, top)
	if m.terminated {
		m.abortTransition()
		return nil
	}

	m.previous = from
	m.current = leaf
	m.executing = leaf
	m.phase = phaseIdle

	if m.hooks.OnTransition != nil {
		m.hooks.OnTransition(&domain.TransitionEvent{From: m.chart.ID(from), To: m.chart.ID(leaf)})
	}
	m.log.Debug("transition", "from", m.chart.ID(from), "to", m.chart.ID(leaf))
	return nil
}

// abortTransition restores the execution cursor after a termination request
// cut a transition short.
func (m *Machine) abortTransition() {
	m.executing = m.current
	m.phase = phaseIdle
}

// drainPending applies deferred transitions until the slot is empty, bounded
// by the machine's transition limit. Entry hooks may refill the slot; exit
// hooks may not.
func (m *Machine) drainPending() error {
	for count := 0; m.hasPending && !m.terminated; {
		count++
		if count > m.limit {
			m.hasPending = false
			m.fail(fmt.Errorf("%w (limit %d)", domain.ErrTransitionLoopExceeded, m.limit))
			return m.failure
		}
		dest, source := m.pendingTarget, m.pendingSource
		m.hasPending = false
		m.pendingTarget, m.pendingSource = domain.None, domain.None
		if err := m.applyTransition(source, dest); err != nil {
			m.fail(err)
			return m.failure
		}
	}
	return nil
}
