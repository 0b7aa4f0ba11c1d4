/*
Package schema loads espalier chart definitions from YAML.

A definition declares the hierarchy only: identities, nesting, and default
children. Hook sets are code and are bound at build time through a Registry,
keyed by state id; states without a registered handler get no-op hooks, which
makes a definition loadable for validation and visualization without any
application code.

	chart: device
	states:
	  - id: off
	  - id: on
	    initial: idle
	    states:
	      - id: idle
	      - id: active
	        meta:
	          timeout_ms: 250
*/
package schema

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/espalier/internal/validator"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
)

// Definition is a parsed chart file.
type Definition struct {
	Chart  string     `yaml:"chart"`
	States []StateDef `yaml:"states"`
}

// StateDef is one state declaration. Initial names the default child; when
// empty, the first child is the default. Meta carries free-form
// application-defined options.
type StateDef struct {
	ID      string         `yaml:"id"`
	Initial string         `yaml:"initial,omitempty"`
	States  []StateDef     `yaml:"states,omitempty"`
	Meta    map[string]any `yaml:"meta,omitempty"`
}

// Registry binds handlers to state ids at build time.
type Registry map[domain.StateID]domain.Handler

// Parse decodes and validates a YAML chart definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse chart definition: %w", err)
	}
	if err := validator.ValidateDefinition(toValidatorStates(def.States)); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads and parses a chart definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart definition: %w", err)
	}
	return Parse(data)
}

// Build assembles the definition into a chart, binding handlers from reg.
// A nil registry produces a chart of no-op states.
func (d *Definition) Build(reg Registry) (*domain.Chart, error) {
	b := dsl.New()
	for i := range d.States {
		buildState(b, nil, &d.States[i], reg)
	}
	return b.Build()
}

func buildState(b *dsl.Builder, parent *dsl.StateBuilder, def *StateDef, reg Registry) *dsl.StateBuilder {
	var sb *dsl.StateBuilder
	if parent == nil {
		sb = b.State(domain.StateID(def.ID))
	} else {
		sb = parent.State(domain.StateID(def.ID))
	}
	if h, ok := reg[domain.StateID(def.ID)]; ok {
		sb.Handler(h)
	}
	for i := range def.States {
		child := buildState(b, sb, &def.States[i], reg)
		// The validator has already checked that Initial names a declared
		// child, so this match cannot miss.
		if def.Initial != "" && def.States[i].ID == def.Initial {
			child.Initial()
		}
	}
	return sb
}

// State returns the definition of id, searching nested states depth-first.
func (d *Definition) State(id string) *StateDef {
	return findState(d.States, id)
}

func findState(defs []StateDef, id string) *StateDef {
	for i := range defs {
		if defs[i].ID == id {
			return &defs[i]
		}
		if found := findState(defs[i].States, id); found != nil {
			return found
		}
	}
	return nil
}

// DecodeMeta decodes a state's meta map into a typed struct.
func DecodeMeta(def *StateDef, out any) error {
	if err := mapstructure.Decode(def.Meta, out); err != nil {
		return fmt.Errorf("failed to decode meta for state %q: %w", def.ID, err)
	}
	return nil
}

func toValidatorStates(defs []StateDef) []validator.State {
	states := make([]validator.State, 0, len(defs))
	for i := range defs {
		states = append(states, validator.State{
			ID:       defs[i].ID,
			Initial:  defs[i].Initial,
			Children: toValidatorStates(defs[i].States),
		})
	}
	return states
}
