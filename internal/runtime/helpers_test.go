package runtime_test

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
)

// journal records hook firings in order so tests can assert the exact
// exit/entry/run sequences.
type journal struct {
	calls []string
}

func (j *journal) add(s string) { j.calls = append(j.calls, s) }
func (j *journal) reset()       { j.calls = nil }

// traced attaches entry and exit hooks that log "Entry <id>" / "Exit <id>".
func traced(j *journal, sb *dsl.StateBuilder, id string) *dsl.StateBuilder {
	return sb.
		OnEntry(func(domain.Instance) { j.add("Entry " + id) }).
		OnExit(func(domain.Instance) { j.add("Exit " + id) })
}

// propagating returns a run hook that logs "Run <id>" and propagates.
func propagating(j *journal, id string) func(domain.Instance, domain.Event) domain.Result {
	return func(domain.Instance, domain.Event) domain.Result {
		j.add("Run " + id)
		return domain.Propagate
	}
}

// transitionOn returns a run hook that logs "Run <id>" and requests a
// transition to target when the event equals trigger, handling it.
func transitionOn(j *journal, id, trigger string, target domain.StateID) func(domain.Instance, domain.Event) domain.Result {
	return func(m domain.Instance, ev domain.Event) domain.Result {
		j.add("Run " + id)
		if ev == trigger {
			_ = m.Transition(target)
			return domain.Handled
		}
		return domain.Propagate
	}
}
