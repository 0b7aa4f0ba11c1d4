package domain

import "fmt"

// None marks the absence of a state index: a missing parent (the state is a
// root) or a missing initial child (the state is a leaf).
const None = -1

// StateSpec is the write-once description of one state, produced by the
// builder (pkg/dsl) or the definition loader (pkg/schema). Parent and Initial
// are ids; the empty id means none.
type StateSpec struct {
	ID      StateID
	Parent  StateID
	Initial StateID
	Handler Handler
}

// record is one arena slot. Parent and initial are indices into the same
// arena, None when absent.
type record struct {
	id      StateID
	parent  int
	initial int
	depth   int
	handler Handler
}

// Chart is the immutable state hierarchy: an arena of state records addressed
// by stable small integer indices, with parent/initial links as indices.
// Charts are built once at configuration time and never mutated; a single
// chart may back any number of machine instances.
type Chart struct {
	states []record
	index  map[StateID]int
}

// NewChart assembles and validates a chart from specs. It enforces the
// structural invariants the engine relies on: unique ids, resolvable parent
// and initial references, acyclic finite parent chains, every initial being a
// direct child of its composite, and every composite (a state that is some
// other state's parent) declaring an initial so descent always reaches a
// leaf.
func NewChart(specs []StateSpec) (*Chart, error) {
	c := &Chart{
		states: make([]record, 0, len(specs)),
		index:  make(map[StateID]int, len(specs)),
	}

	for _, s := range specs {
		if s.ID == "" {
			return nil, fmt.Errorf("state with empty id: %w", ErrUnknownState)
		}
		if _, ok := c.index[s.ID]; ok {
			return nil, fmt.Errorf("state %q: %w", s.ID, ErrDuplicateState)
		}
		h := s.Handler
		if h == nil {
			h = Base{}
		}
		c.index[s.ID] = len(c.states)
		c.states = append(c.states, record{id: s.ID, parent: None, initial: None, depth: None, handler: h})
	}

	// Resolve references now that every id has a slot.
	hasChild := make([]bool, len(c.states))
	for i, s := range specs {
		if s.Parent != "" {
			p, ok := c.index[s.Parent]
			if !ok {
				return nil, fmt.Errorf("state %q parent %q: %w", s.ID, s.Parent, ErrUnknownState)
			}
			c.states[i].parent = p
			hasChild[p] = true
		}
		if s.Initial != "" {
			init, ok := c.index[s.Initial]
			if !ok {
				return nil, fmt.Errorf("state %q initial %q: %w", s.ID, s.Initial, ErrUnknownState)
			}
			c.states[i].initial = init
		}
	}

	for i := range c.states {
		if err := c.resolveDepth(i); err != nil {
			return nil, err
		}
	}

	for i, st := range c.states {
		if st.initial != None && c.states[st.initial].parent != i {
			return nil, fmt.Errorf("state %q initial %q: %w", st.id, c.states[st.initial].id, ErrInvalidInitial)
		}
		if hasChild[i] && st.initial == None {
			return nil, fmt.Errorf("state %q: %w", st.id, ErrMissingInitial)
		}
	}

	return c, nil
}

// resolveDepth computes the depth of state i by walking parent links,
// rejecting cycles. Depth strictly increasing along initial links is what
// guarantees initial chains terminate.
func (c *Chart) resolveDepth(i int) error {
	if c.states[i].depth != None {
		return nil
	}
	depth := 0
	for p := c.states[i].parent; p != None; p = c.states[p].parent {
		depth++
		if depth > len(c.states) {
			return fmt.Errorf("state %q: %w", c.states[i].id, ErrParentCycle)
		}
	}
	c.states[i].depth = depth
	return nil
}

// Len returns the number of states in the chart.
func (c *Chart) Len() int { return len(c.states) }

// Index returns the arena index of id.
func (c *Chart) Index(id StateID) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Contains reports whether id is registered in the chart.
func (c *Chart) Contains(id StateID) bool {
	_, ok := c.index[id]
	return ok
}

// ID returns the identity of the state at index i, or the empty id for None.
func (c *Chart) ID(i int) StateID {
	if i == None {
		return ""
	}
	return c.states[i].id
}

// Parent returns the parent index of state i, None for roots.
func (c *Chart) Parent(i int) int { return c.states[i].parent }

// Initial returns the default-child index of state i, None for leaves.
func (c *Chart) Initial(i int) int { return c.states[i].initial }

// Depth returns the number of ancestors of state i.
func (c *Chart) Depth(i int) int { return c.states[i].depth }

// Handler returns the hook set of state i; never nil.
func (c *Chart) Handler(i int) Handler { return c.states[i].handler }

// IsLeaf reports whether state i has no initial child.
func (c *Chart) IsLeaf(i int) bool { return c.states[i].initial == None }
