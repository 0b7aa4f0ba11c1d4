package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/domain"
)

func TestNewChartResolvesHierarchy(t *testing.T) {
	chart, err := domain.NewChart([]domain.StateSpec{
		{ID: "root", Initial: "p"},
		{ID: "p", Parent: "root", Initial: "a"},
		{ID: "a", Parent: "p"},
		{ID: "b", Parent: "p"},
	})
	require.NoError(t, err)

	require.Equal(t, 4, chart.Len())

	root, ok := chart.Index("root")
	require.True(t, ok)
	p, ok := chart.Index("p")
	require.True(t, ok)
	a, ok := chart.Index("a")
	require.True(t, ok)

	assert.Equal(t, domain.None, chart.Parent(root))
	assert.Equal(t, root, chart.Parent(p))
	assert.Equal(t, p, chart.Parent(a))
	assert.Equal(t, a, chart.Initial(p))

	assert.Equal(t, 0, chart.Depth(root))
	assert.Equal(t, 1, chart.Depth(p))
	assert.Equal(t, 2, chart.Depth(a))

	assert.False(t, chart.IsLeaf(p))
	assert.True(t, chart.IsLeaf(a))
	assert.NotNil(t, chart.Handler(a), "nil handlers default to no-ops")

	assert.Equal(t, domain.StateID(""), chart.ID(domain.None))
	assert.False(t, chart.Contains("ghost"))
}

func TestNewChartRejectsInvalidSpecs(t *testing.T) {
	tests := []struct {
		name  string
		specs []domain.StateSpec
		want  error
	}{
		{
			name: "duplicate id",
			specs: []domain.StateSpec{
				{ID: "a"},
				{ID: "a"},
			},
			want: domain.ErrDuplicateState,
		},
		{
			name: "empty id",
			specs: []domain.StateSpec{
				{ID: ""},
			},
			want: domain.ErrUnknownState,
		},
		{
			name: "unknown parent",
			specs: []domain.StateSpec{
				{ID: "a", Parent: "ghost"},
			},
			want: domain.ErrUnknownState,
		},
		{
			name: "unknown initial",
			specs: []domain.StateSpec{
				{ID: "a", Initial: "ghost"},
			},
			want: domain.ErrUnknownState,
		},
		{
			name: "initial not a direct child",
			specs: []domain.StateSpec{
				{ID: "root", Initial: "leaf"},
				{ID: "mid", Parent: "root", Initial: "leaf"},
				{ID: "leaf", Parent: "mid"},
			},
			want: domain.ErrInvalidInitial,
		},
		{
			name: "composite without initial",
			specs: []domain.StateSpec{
				{ID: "root"},
				{ID: "child", Parent: "root"},
			},
			want: domain.ErrMissingInitial,
		},
		{
			name: "parent cycle",
			specs: []domain.StateSpec{
				{ID: "a", Parent: "b", Initial: "b"},
				{ID: "b", Parent: "a", Initial: "a"},
			},
			want: domain.ErrParentCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewChart(tt.specs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHooksAdapter(t *testing.T) {
	var entered, exited, ran bool
	h := domain.Hooks{
		OnEntry: func(domain.Instance) { entered = true },
		OnExit:  func(domain.Instance) { exited = true },
		OnRun:   func(domain.Instance, domain.Event) domain.Result { ran = true; return domain.Handled },
	}

	h.Entry(nil)
	h.Exit(nil)
	assert.Equal(t, domain.Handled, h.Run(nil, "ev"))
	assert.True(t, entered)
	assert.True(t, exited)
	assert.True(t, ran)

	// Nil fields are safe no-ops; a nil run propagates.
	var empty domain.Hooks
	empty.Entry(nil)
	empty.Exit(nil)
	assert.Equal(t, domain.Propagate, empty.Run(nil, "ev"))
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "propagate", domain.Propagate.String())
	assert.Equal(t, "handled", domain.Handled.String())
}
