package director

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aspects/internal/debug"
	"aspects/internal/game"
	"aspects/internal/game/combiner"
	"aspects/internal/game/ending"
)

// sessionActions drives a local session the way the MCP server does.
type sessionActions struct {
	s *game.Session
}

func (a sessionActions) step(ctx context.Context, target combiner.Target) (game.Snapshot, error) {
	f := a.s.Step(ctx, 0, game.Input{DialogueDone: true, Confirm: true, Target: &target})
	return f.Snapshot, f.Err
}

func (a sessionActions) SelectSocket(ctx context.Context, id string) (game.Snapshot, error) {
	return a.step(ctx, combiner.Socket(id))
}

func (a sessionActions) Confirm(ctx context.Context) (game.Snapshot, error) {
	return a.step(ctx, combiner.Station())
}

func newSession(t *testing.T) *game.Session {
	t.Helper()
	s, err := game.NewSession(game.Options{SkipIntro: true})
	require.NoError(t, err)
	s.Step(context.Background(), 0, game.Input{})
	return s
}

func TestPlanReachesEveryEnding(t *testing.T) {
	for _, want := range []ending.Ending{ending.GoodEnding, ending.BadEndingTooPositive, ending.BadEndingTooNegative} {
		t.Run(want.String(), func(t *testing.T) {
			s := newSession(t)
			steps, err := Plan(s.Snapshot(), want, ending.DefaultThreshold)
			require.NoError(t, err)
			assert.Len(t, steps, 5)

			ok, failed := Execute(context.Background(), steps, sessionActions{s}, debug.NewLogger(false, ""))
			require.Empty(t, failed)
			assert.Len(t, ok, 5)

			got, _, ended := s.Ending()
			require.True(t, ended)
			assert.Equal(t, want, got)
		})
	}
}

func TestPlanRespectsThreshold(t *testing.T) {
	s := newSession(t)
	// Every filled garden scores within 100, so all of them are good.
	_, err := Plan(s.Snapshot(), ending.BadEndingTooPositive, 100)
	assert.ErrorIs(t, err, ErrNoPlan)
}

func TestNextSuggestsPlayableStep(t *testing.T) {
	s := newSession(t)
	step, ok := Next(s.Snapshot(), ending.DefaultThreshold)
	require.True(t, ok)
	assert.NotEmpty(t, step.LeftSocket)
	assert.NotEmpty(t, step.RightSocket)

	snap, err := sessionActions{s}.SelectSocket(context.Background(), step.LeftSocket)
	require.NoError(t, err)
	snap, err = sessionActions{s}.SelectSocket(context.Background(), step.RightSocket)
	require.NoError(t, err)
	assert.Equal(t, step.Result.String(), snap.Preview)
}

func TestNextOnFullGarden(t *testing.T) {
	s := newSession(t)
	steps, err := Plan(s.Snapshot(), ending.GoodEnding, ending.DefaultThreshold)
	require.NoError(t, err)
	Execute(context.Background(), steps, sessionActions{s}, nil)

	_, ok := Next(s.Snapshot(), ending.DefaultThreshold)
	assert.False(t, ok)
}

func TestExecuteStopsAtFirstFailure(t *testing.T) {
	s := newSession(t)
	steps := []Step{
		{LeftSocket: "top-1", RightSocket: "bottom-2"},
		{LeftSocket: "top-1", RightSocket: "bottom-1"},
	}
	ok, failed := Execute(context.Background(), steps, sessionActions{s}, nil)
	assert.Empty(t, ok)
	require.Len(t, failed, 1)
	assert.Contains(t, failed[0], "step 1")
}
