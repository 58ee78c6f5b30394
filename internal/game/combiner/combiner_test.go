package combiner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"aspects/internal/game/aspect"
	"aspects/internal/game/events"
	"aspects/internal/game/world"
)

func top(id string, a aspect.Aspect) world.Socket {
	return world.Socket{ID: id, Aspect: a, Side: world.Top}
}

func bottom(id string, a aspect.Aspect) world.Socket {
	return world.Socket{ID: id, Aspect: a, Side: world.Bottom}
}

func placed(as ...aspect.Aspect) mapset.Set[aspect.Aspect] {
	set := mapset.New[aspect.Aspect]()
	for _, a := range as {
		set.Put(a)
	}
	return set
}

func TestToggleSelectsAndDeselects(t *testing.T) {
	ctx := context.Background()
	c := New()
	var q events.Queue

	out, err := c.Toggle(ctx, top("t1", aspect.Joy), &q)
	require.NoError(t, err)
	assert.Equal(t, Selected, out)
	assert.Equal(t, aspect.Joy, c.Left)
	assert.Equal(t, StateLeft, c.State())

	out, err = c.Toggle(ctx, top("t1", aspect.Joy), &q)
	require.NoError(t, err)
	assert.Equal(t, Deselected, out)
	assert.True(t, c.Left.IsZero())
	assert.Equal(t, StateEmpty, c.State())

	cues := q.Drain()
	require.Len(t, cues, 2)
	assert.Equal(t, events.CueSelect, cues[0].Cue)
	assert.Equal(t, events.CueDeselect, cues[1].Cue)
}

func TestToggleReplacesOperandOnSameSide(t *testing.T) {
	ctx := context.Background()
	c := New()
	var q events.Queue

	_, err := c.Toggle(ctx, top("t1", aspect.Joy), &q)
	require.NoError(t, err)
	out, err := c.Toggle(ctx, top("t2", aspect.Anger), &q)
	require.NoError(t, err)

	assert.Equal(t, Selected, out)
	assert.Equal(t, aspect.Anger, c.Left)
	assert.Equal(t, StateLeft, c.State())
}

func TestToggleIgnoresEmptySocketsAndFullGarden(t *testing.T) {
	ctx := context.Background()
	c := New()
	var q events.Queue

	out, err := c.Toggle(ctx, top("t3", aspect.NotImplemented), &q)
	require.NoError(t, err)
	assert.Equal(t, Ignored, out)

	c.AllFull = true
	out, err = c.Toggle(ctx, bottom("b1", aspect.Sadness), &q)
	require.NoError(t, err)
	assert.Equal(t, Ignored, out)
	assert.Zero(t, q.Len())
	assert.Equal(t, StateEmpty, c.State())
}

func TestPreviewFollowsStagedPair(t *testing.T) {
	ctx := context.Background()
	c := New()
	var q events.Queue

	_, _ = c.Toggle(ctx, top("t1", aspect.Joy), &q)
	c.UpdatePreview(placed(aspect.Joy, aspect.Sadness))
	assert.True(t, c.Preview.IsZero())

	_, _ = c.Toggle(ctx, bottom("b1", aspect.Sadness), &q)
	c.UpdatePreview(placed(aspect.Joy, aspect.Sadness))
	assert.Equal(t, aspect.Nostalgia, c.Preview)
	assert.Equal(t, NotBlocked, c.Blocked)
	assert.Equal(t, StateBoth, c.State())

	c.UpdatePreview(placed(aspect.Joy, aspect.Sadness, aspect.Nostalgia))
	assert.Equal(t, BlockedAlreadyPlaced, c.Blocked)

	_, _ = c.Toggle(ctx, bottom("b1", aspect.Sadness), &q)
	c.UpdatePreview(placed())
	assert.True(t, c.Preview.IsZero())
	assert.Equal(t, StateLeft, c.State())
}

func TestPreviewUndiscoveredPair(t *testing.T) {
	ctx := context.Background()
	c := New()
	var q events.Queue

	_, _ = c.Toggle(ctx, top("t1", aspect.Joy), &q)
	_, _ = c.Toggle(ctx, bottom("b2", aspect.Fear), &q)
	c.UpdatePreview(placed())

	assert.True(t, c.Preview.IsZero())
	assert.Equal(t, BlockedUndiscovered, c.Blocked)
	assert.ErrorIs(t, c.Blocked.Err(), ErrUndiscovered)
}

func TestConfirmCommitsPair(t *testing.T) {
	ctx := context.Background()
	c := New()
	var q events.Queue

	_, _ = c.Toggle(ctx, top("t1", aspect.Joy), &q)
	_, _ = c.Toggle(ctx, bottom("b1", aspect.Sadness), &q)
	q.Drain()

	got, err := c.Confirm(ctx, placed(aspect.Joy, aspect.Sadness), &q)
	require.NoError(t, err)
	assert.Equal(t, aspect.Nostalgia, got)
	assert.Equal(t, aspect.Nostalgia, c.LastCombined)
	assert.True(t, c.Left.IsZero())
	assert.True(t, c.Right.IsZero())
	assert.Equal(t, StateEmpty, c.State())

	evs := q.Drain()
	require.Len(t, evs, 1)
	assert.Equal(t, events.CombinedAspect, evs[0].Type)
}

func TestConfirmFailuresLeaveStateUntouched(t *testing.T) {
	ctx := context.Background()

	t.Run("incomplete", func(t *testing.T) {
		c := New()
		var q events.Queue
		_, _ = c.Toggle(ctx, top("t1", aspect.Joy), &q)

		_, err := c.Confirm(ctx, placed(), &q)
		assert.ErrorIs(t, err, ErrIncomplete)
		assert.Equal(t, aspect.Joy, c.Left)
	})

	t.Run("undiscovered", func(t *testing.T) {
		c := New()
		var q events.Queue
		_, _ = c.Toggle(ctx, top("t1", aspect.Joy), &q)
		_, _ = c.Toggle(ctx, bottom("b2", aspect.Fear), &q)

		_, err := c.Confirm(ctx, placed(), &q)
		assert.ErrorIs(t, err, ErrUndiscovered)
		assert.Equal(t, aspect.Joy, c.Left)
		assert.Equal(t, aspect.Fear, c.Right)
		assert.Equal(t, StateBoth, c.State())
		assert.True(t, c.LastCombined.IsZero())
	})

	t.Run("already discovered", func(t *testing.T) {
		c := New()
		var q events.Queue
		_, _ = c.Toggle(ctx, top("t1", aspect.Joy), &q)
		_, _ = c.Toggle(ctx, bottom("b1", aspect.Sadness), &q)

		_, err := c.Confirm(ctx, placed(aspect.Nostalgia), &q)
		assert.ErrorIs(t, err, ErrAlreadyDiscovered)
		assert.Equal(t, StateBoth, c.State())
		assert.Zero(t, q.Count(events.CombinedAspect))
	})
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "none", None().String())
	assert.Equal(t, "socket top-1", Socket("top-1").String())
	assert.Equal(t, "combiner", Station().String())
	assert.True(t, None().IsNone())
}
