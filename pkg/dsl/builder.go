package dsl

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
)

// Builder accumulates state declarations and compiles them into an immutable
// chart.
type Builder struct {
	order []*StateBuilder
	seen  map[domain.StateID]bool
	errs  []error
}

// StateBuilder declares one state. Obtain it from Builder.State (a root
// state) or from another StateBuilder.State (a child).
type StateBuilder struct {
	builder  *Builder
	parent   *StateBuilder
	id       domain.StateID
	children []*StateBuilder
	initial  *StateBuilder

	handler domain.Handler
	entry   func(domain.Instance)
	exit    func(domain.Instance)
	run     func(domain.Instance, domain.Event) domain.Result
}

// New creates an empty chart builder.
func New() *Builder {
	return &Builder{seen: make(map[domain.StateID]bool)}
}

// State declares a root state.
func (b *Builder) State(id domain.StateID) *StateBuilder {
	return b.add(nil, id)
}

func (b *Builder) add(parent *StateBuilder, id domain.StateID) *StateBuilder {
	if id == "" {
		b.errs = append(b.errs, fmt.Errorf("state with empty id: %w", domain.ErrUnknownState))
	} else if b.seen[id] {
		// Duplicate-identity detection happens at registration so a Build
		// failure points at the colliding declaration.
		b.errs = append(b.errs, fmt.Errorf("state %q: %w", id, domain.ErrDuplicateState))
	}
	b.seen[id] = true

	sb := &StateBuilder{builder: b, parent: parent, id: id}
	b.order = append(b.order, sb)
	if parent != nil {
		parent.children = append(parent.children, sb)
	}
	return sb
}

// State declares a child of the receiver.
func (sb *StateBuilder) State(id domain.StateID) *StateBuilder {
	return sb.builder.add(sb, id)
}

// Initial marks the receiver as its parent's default child, overriding the
// first-child default. Calling it on a root state is a no-op.
func (sb *StateBuilder) Initial() *StateBuilder {
	if sb.parent != nil {
		sb.parent.initial = sb
	}
	return sb
}

// Handler attaches a concrete hook set to the state. It replaces any closure
// hooks attached earlier.
func (sb *StateBuilder) Handler(h domain.Handler) *StateBuilder {
	sb.handler = h
	return sb
}

// OnEntry attaches an entry closure.
func (sb *StateBuilder) OnEntry(fn func(domain.Instance)) *StateBuilder {
	sb.entry = fn
	return sb
}

// OnExit attaches an exit closure.
func (sb *StateBuilder) OnExit(fn func(domain.Instance)) *StateBuilder {
	sb.exit = fn
	return sb
}

// Run attaches a run closure.
func (sb *StateBuilder) Run(fn func(domain.Instance, domain.Event) domain.Result) *StateBuilder {
	sb.run = fn
	return sb
}

// Build compiles the declarations into a chart, validating structural
// invariants. The builder stays usable afterwards, but charts are immutable.
func (b *Builder) Build() (*domain.Chart, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	specs := make([]domain.StateSpec, 0, len(b.order))
	for _, sb := range b.order {
		spec := domain.StateSpec{ID: sb.id, Handler: sb.resolveHandler()}
		if sb.parent != nil {
			spec.Parent = sb.parent.id
		}
		if init := sb.defaultChild(); init != nil {
			spec.Initial = init.id
		}
		specs = append(specs, spec)
	}
	return domain.NewChart(specs)
}

// defaultChild returns the child entered when this state is the transition
// target: the one marked Initial, else the first declared child.
func (sb *StateBuilder) defaultChild() *StateBuilder {
	if sb.initial != nil {
		return sb.initial
	}
	if len(sb.children) > 0 {
		return sb.children[0]
	}
	return nil
}

func (sb *StateBuilder) resolveHandler() domain.Handler {
	if sb.handler != nil {
		return sb.handler
	}
	if sb.entry == nil && sb.exit == nil && sb.run == nil {
		return domain.Base{}
	}
	return domain.Hooks{OnEntry: sb.entry, OnExit: sb.exit, OnRun: sb.run}
}
