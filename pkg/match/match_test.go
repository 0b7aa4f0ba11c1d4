package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/match"
)

type buttonPress struct{ id int }

type keyPress struct{ code rune }

func TestFirstTypeMatchWins(t *testing.T) {
	var got buttonPress
	res := match.On(match.On(match.New(nil, buttonPress{id: 3}),
		func(m domain.Instance, e keyPress) domain.Result {
			t.Fatal("keyPress arm must not fire")
			return domain.Propagate
		}),
		func(m domain.Instance, e buttonPress) domain.Result {
			got = e
			return domain.Handled
		}).Result()

	assert.Equal(t, domain.Handled, res)
	assert.Equal(t, 3, got.id)
}

func TestLaterArmsSkippedAfterMatch(t *testing.T) {
	calls := 0
	arm := func(m domain.Instance, e buttonPress) domain.Result {
		calls++
		return domain.Handled
	}
	res := match.On(match.On(match.New(nil, buttonPress{}), arm), arm).Result()

	assert.Equal(t, domain.Handled, res)
	assert.Equal(t, 1, calls)
}

func TestUnmatchedEventPropagates(t *testing.T) {
	res := match.On(match.New(nil, "a string event"),
		func(m domain.Instance, e buttonPress) domain.Result {
			return domain.Handled
		}).Result()

	assert.Equal(t, domain.Propagate, res)
}

func TestOtherwiseCatchesUnmatched(t *testing.T) {
	res := match.On(match.New(nil, keyPress{code: 'q'}),
		func(m domain.Instance, e buttonPress) domain.Result {
			return domain.Handled
		}).Otherwise(func(m domain.Instance, ev domain.Event) domain.Result {
		assert.Equal(t, keyPress{code: 'q'}, ev)
		return domain.Handled
	}).Result()

	assert.Equal(t, domain.Handled, res)
}

func TestOtherwiseSkippedAfterMatch(t *testing.T) {
	res := match.On(match.New(nil, buttonPress{}),
		func(m domain.Instance, e buttonPress) domain.Result {
			return domain.Handled
		}).Otherwise(func(m domain.Instance, ev domain.Event) domain.Result {
		t.Fatal("Otherwise must not fire after a match")
		return domain.Propagate
	}).Result()

	assert.Equal(t, domain.Handled, res)
}

func TestInterfaceArmMatchesConcreteEvent(t *testing.T) {
	res := match.On(match.New(nil, 42),
		func(m domain.Instance, e any) domain.Result {
			assert.Equal(t, 42, e)
			return domain.Handled
		}).Result()

	assert.Equal(t, domain.Handled, res)
}
