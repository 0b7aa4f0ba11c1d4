// Package validator checks chart definitions for consistency before they are
// compiled. It operates on a minimal structural view so it stays decoupled
// from the schema file format.
package validator

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
)

// MaxNestingDepth caps how deep a definition may nest states. The engine's
// walks are O(depth); practical control charts stay far below this.
const MaxNestingDepth = 32

// State is the structural view of one declared state.
type State struct {
	ID       string
	Initial  string
	Children []State
}

// ValidateDefinition checks the declared hierarchy: non-empty unique ids,
// initial references naming a declared direct child, and bounded nesting.
func ValidateDefinition(states []State) error {
	seen := make(map[string]bool)
	return validateLevel(states, seen, 0)
}

func validateLevel(states []State, seen map[string]bool, depth int) error {
	if depth > MaxNestingDepth {
		return fmt.Errorf("state nesting exceeds %d levels: %w", MaxNestingDepth, domain.ErrParentCycle)
	}
	for i := range states {
		s := &states[i]
		if s.ID == "" {
			return fmt.Errorf("state with empty id: %w", domain.ErrUnknownState)
		}
		if seen[s.ID] {
			return fmt.Errorf("state %q: %w", s.ID, domain.ErrDuplicateState)
		}
		seen[s.ID] = true

		if s.Initial != "" {
			if !hasChild(s, s.Initial) {
				return fmt.Errorf("state %q initial %q: %w", s.ID, s.Initial, domain.ErrInvalidInitial)
			}
		}
		if err := validateLevel(s.Children, seen, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func hasChild(s *State, id string) bool {
	for i := range s.Children {
		if s.Children[i].ID == id {
			return true
		}
	}
	return false
}
