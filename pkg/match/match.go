// Package match is a typed-event dispatch helper layered on top of the
// opaque event value passed to run hooks. The engine itself never inspects
// events; match restores type safety at the hook boundary.
//
//	Run: func(m espalier.Instance, ev espalier.Event) espalier.Result {
//		return match.On(match.New(m, ev), func(m espalier.Instance, e ButtonPress) espalier.Result {
//			_ = m.Transition("active")
//			return espalier.Handled
//		}).Result()
//	}
package match

import "github.com/aretw0/espalier/pkg/domain"

// Matcher tries handlers against an event in declaration order; the first
// type match wins.
type Matcher struct {
	m      domain.Instance
	ev     domain.Event
	done   bool
	result domain.Result
}

// New starts a match over ev. The zero result is Propagate, so an event no
// arm matches bubbles to the parent state as usual.
func New(m domain.Instance, ev domain.Event) *Matcher {
	return &Matcher{m: m, ev: ev}
}

// On runs h when the event is an E and no earlier arm matched.
//
// Methods cannot carry type parameters, hence the free function.
func On[E any](x *Matcher, h func(domain.Instance, E) domain.Result) *Matcher {
	if x.done {
		return x
	}
	if e, ok := x.ev.(E); ok {
		x.result = h(x.m, e)
		x.done = true
	}
	return x
}

// Otherwise runs h when no earlier arm matched.
func (x *Matcher) Otherwise(h func(domain.Instance, domain.Event) domain.Result) *Matcher {
	if !x.done {
		x.result = h(x.m, x.ev)
		x.done = true
	}
	return x
}

// Result returns the outcome of the match: the matched handler's result, or
// Propagate when nothing matched.
func (x *Matcher) Result() domain.Result { return x.result }
