package results_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/countdown/internal/game/pool"
	"github.com/cory-johannsen/countdown/internal/game/rules"
	"github.com/cory-johannsen/countdown/internal/game/state"
	"github.com/cory-johannsen/countdown/internal/storage/results"
)

// submitted plays a seeded game through to the result screen with input typed.
func submitted(t *testing.T, input string) *state.Game {
	t.Helper()
	g, err := state.New(rules.Default(), pool.NewSeededSource(11), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.True(t, g.Advance())
	for !g.IsNumberSelectionComplete() {
		_, ok := g.DrawSmall()
		require.True(t, ok)
	}
	require.True(t, g.Advance())
	for _, c := range input {
		g.Append(c)
	}
	require.True(t, g.Submit())
	return g
}

func TestFromGame(t *testing.T) {
	g := submitted(t, "")

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	r, err := results.FromGame(g, at)
	require.NoError(t, err)

	target, _ := g.Target()
	assert.Equal(t, g.ID(), r.ID)
	assert.Equal(t, at.UTC(), r.PlayedAt)
	assert.Equal(t, target, r.Target)
	assert.Equal(t, g.Selection().Values(), r.Numbers)
	assert.Empty(t, r.Expression)
	assert.False(t, r.Scored)
	assert.False(t, r.Exact())
}

func TestFromGame_Scored(t *testing.T) {
	// Same seed, same deal: the probe reveals the first drawn number.
	probe := submitted(t, "")
	first, _ := probe.Selection().At(0)

	g := submitted(t, strconv.Itoa(first))
	r, err := results.FromGame(g, time.Now())
	require.NoError(t, err)
	assert.True(t, r.Scored)
	assert.Equal(t, strconv.Itoa(first), r.Expression)
	target, _ := g.Target()
	want := target - first
	if want < 0 {
		want = -want
	}
	assert.Equal(t, want, r.Distance)
}

func TestFromGame_NotSubmitted(t *testing.T) {
	g, err := state.New(rules.Default(), pool.NewSeededSource(1), zaptest.NewLogger(t))
	require.NoError(t, err)
	_, err = results.FromGame(g, time.Now())
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var s results.Store = results.Nop{}
	require.NoError(t, s.Save(context.Background(), results.Result{}))
	got, err := s.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = s.Recent(context.Background(), 0)
	assert.ErrorIs(t, err, results.ErrInvalidLimit)
}

func TestExact(t *testing.T) {
	assert.True(t, results.Result{Scored: true}.Exact())
	assert.False(t, results.Result{Scored: true, Distance: 3}.Exact())
	assert.False(t, results.Result{}.Exact())
}
