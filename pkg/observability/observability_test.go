package observability

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/internal/runtime"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
)

func toggleChart(t *testing.T) *domain.Chart {
	t.Helper()
	b := dsl.New()
	root := b.State("root")
	root.State("off").Run(func(m domain.Instance, ev domain.Event) domain.Result {
		if ev == "flip" {
			_ = m.Transition("on")
			return domain.Handled
		}
		if ev == "quit" {
			m.Terminate(0)
			return domain.Handled
		}
		return domain.Propagate
	})
	root.State("on")

	chart, err := b.Build()
	require.NoError(t, err)
	return chart
}

func TestMetricsCountLifecycle(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	metrics, err := NewMetrics(reg, "espalier")
	require.NoError(t, err)

	m := runtime.New(toggleChart(t), runtime.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, m.Initialize("root", nil))

	_, err = m.Dispatch("flip")
	require.NoError(t, err)
	_, err = m.Dispatch("unknown")
	require.NoError(t, err)

	// Initialize enters root and off; the transition exits off and enters on.
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.hookCalls.WithLabelValues("root", "entry")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.hookCalls.WithLabelValues("off", "entry")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.hookCalls.WithLabelValues("off", "exit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.transitions.WithLabelValues("off", "on")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.dispatches.WithLabelValues("handled")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.dispatches.WithLabelValues("propagated")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.terminations))
}

func TestMetricsCountTermination(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	metrics, err := NewMetrics(reg, "espalier")
	require.NoError(t, err)

	m := runtime.New(toggleChart(t), runtime.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, m.Initialize("root", nil))

	_, err = m.Dispatch("quit")
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.terminations))
}

func TestNewMetricsRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	_, err := NewMetrics(reg, "espalier")
	require.NoError(t, err)
	_, err = NewMetrics(reg, "espalier")
	assert.Error(t, err)
}

func TestLogHooksEmitLines(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := runtime.New(toggleChart(t), runtime.WithLifecycleHooks(LogHooks(log)))
	require.NoError(t, m.Initialize("root", nil))
	_, err := m.Dispatch("flip")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "state entered")
	assert.Contains(t, out, "state exited")
	assert.Contains(t, out, "transition")
}

func TestCombineFansOut(t *testing.T) {
	var first, second int
	count := func(n *int) domain.LifecycleHooks {
		return domain.LifecycleHooks{
			OnStateEnter: func(e *domain.StateEvent) { *n++ },
		}
	}

	m := runtime.New(toggleChart(t), runtime.WithLifecycleHooks(Combine(count(&first), count(&second))))
	require.NoError(t, m.Initialize("root", nil))

	assert.Equal(t, 2, first)
	assert.Equal(t, first, second)
}
