package runtime

import (
	"github.com/aretw0/espalier/pkg/domain"
)

// Dispatch offers one event to the machine. The current leaf's run hook goes
// first; if it neither handles the event nor requests a transition, the
// event bubbles up the ancestor chain until some ancestor handles it, a
// transition is requested, termination is requested, or the root is reached.
// Transitions requested anywhere in the cycle are applied afterwards, in
// request order, bounded by the transition limit.
//
// The returned value is 0 while the machine is running and the stored
// termination value once terminated. After termination Dispatch is a no-op
// that re-reports the same value without invoking any hook.
func (m *Machine) Dispatch(ev domain.Event) (int32, error) {
	if !m.initialized {
		return 0, domain.ErrNotInitialized
	}
	if m.failure != nil {
		return 0, m.failure
	}
	if m.terminated {
		return m.terminateVal, nil
	}

	m.handled = false
	m.transitionRequested = false
	m.hasPending = false
	m.pendingTarget, m.pendingSource = domain.None, domain.None

	leaf := m.current

	m.phase = phaseRun
	m.executing = leaf
	if m.chart.Handler(leaf).Run(m, ev) == domain.Handled {
		m.handled = true
	}

	if !m.terminated && !m.handled && !m.transitionRequested {
		for p := m.chart.Parent(leaf); p != domain.None; p = m.chart.Parent(p) {
			m.executing = p
			if m.chart.Handler(p).Run(m, ev) == domain.Handled {
				m.handled = true
			}
			if m.terminated || m.handled || m.transitionRequested {
				break
			}
		}
	}
	m.executing = m.current
	m.phase = phaseIdle

	if err := m.drainPending(); err != nil {
		return 0, err
	}

	if m.hooks.OnDispatch != nil {
		m.hooks.OnDispatch(&domain.DispatchEvent{State: m.chart.ID(leaf), Event: ev, Handled: m.handled})
	}

	if m.terminated {
		return m.terminateVal, nil
	}
	return 0, nil
}
