package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aspects/internal/game/aspect"
)

const smallLevel = `
name: small
tiles:
  - "#######"
  - "#.....#"
  - "#.....#"
  - "#.....#"
  - "#######"
player: {x: 1, y: 2}
combiner: {x: 3, y: 2}
sockets:
  - {id: a, x: 2, y: 1, side: left, aspect: joy}
  - {id: b, x: 4, y: 1, side: top}
  - {id: c, x: 2, y: 3, side: right, aspect: sadness}
  - {id: d, x: 4, y: 3, side: bottom}
`

func newSmallWorld(t *testing.T) *World {
	t.Helper()
	level, err := ParseLevel(strings.NewReader(smallLevel))
	require.NoError(t, err)
	w, err := New(level)
	require.NoError(t, err)
	return w
}

func TestDefaultLevelLoads(t *testing.T) {
	level, err := DefaultLevel()
	require.NoError(t, err)

	w, err := New(level)
	require.NoError(t, err)
	assert.Equal(t, "garden", w.Name())
	assert.Len(t, w.Sockets(), 14)
	assert.Equal(t, 10, w.EmptyCount())
	assert.False(t, w.Full())
}

func TestParseLevelAliasesAndDefaults(t *testing.T) {
	w := newSmallWorld(t)

	a, ok := w.Socket("a")
	require.True(t, ok)
	assert.Equal(t, Top, a.Side)
	assert.Equal(t, aspect.Joy, a.Aspect)

	c, ok := w.Socket("c")
	require.True(t, ok)
	assert.Equal(t, Bottom, c.Side)
	assert.True(t, w.Holds(aspect.Sadness))
	assert.False(t, w.Holds(aspect.NotImplemented))
}

func TestParseLevelRejectsBadLayouts(t *testing.T) {
	cases := map[string]string{
		"unknown aspect": strings.Replace(smallLevel, "aspect: joy", "aspect: boredom", 1),
		"socket on wall": strings.Replace(smallLevel, "{id: b, x: 4, y: 1", "{id: b, x: 0, y: 0", 1),
		"duplicate id":   strings.Replace(smallLevel, "{id: d,", "{id: c,", 1),
		"overlap":        strings.Replace(smallLevel, "{id: b, x: 4, y: 1", "{id: b, x: 2, y: 1", 1),
		"one side only":  strings.NewReplacer("side: right", "side: top", "side: bottom", "side: top").Replace(smallLevel),
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLevel(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestPlaceCombinedFillsLeftmostPerSide(t *testing.T) {
	level, err := DefaultLevel()
	require.NoError(t, err)
	w, err := New(level)
	require.NoError(t, err)

	filled := w.PlaceCombined(aspect.Nostalgia)
	require.Len(t, filled, 2)
	assert.Equal(t, "top-3", filled[0].ID)
	assert.Equal(t, "bottom-3", filled[1].ID)

	s, _ := w.Socket("top-3")
	assert.Equal(t, aspect.Nostalgia, s.Aspect)
	s, _ = w.Socket("top-4")
	assert.True(t, s.Empty())
	assert.Equal(t, 8, w.EmptyCount())
}

func TestPlaceCombinedSkipsFullSide(t *testing.T) {
	level, err := ParseLevel(strings.NewReader(strings.Replace(smallLevel, "{id: b, x: 4, y: 1, side: top}", "{id: b, x: 4, y: 1, side: top, aspect: anger}", 1)))
	require.NoError(t, err)
	w, err := New(level)
	require.NoError(t, err)

	filled := w.PlaceCombined(aspect.Nostalgia)
	require.Len(t, filled, 1)
	assert.Equal(t, "d", filled[0].ID)
	assert.True(t, w.Full())

	assert.Empty(t, w.PlaceCombined(aspect.Melancholy))
	assert.Empty(t, w.PlaceCombined(aspect.NotImplemented))
}

func TestMovePlayerRespectsObstacles(t *testing.T) {
	w := newSmallWorld(t)

	assert.False(t, w.MovePlayer(-1, 0), "wall")
	assert.True(t, w.MovePlayer(1, 0))
	assert.False(t, w.MovePlayer(1, 0), "combiner")
	assert.False(t, w.MovePlayer(0, -1), "socket a")

	p, ok := w.Player()
	require.True(t, ok)
	assert.Equal(t, Position{X: 2, Y: 2}, p)

	c, ok := w.Combiner()
	require.True(t, ok)
	assert.Equal(t, Position{X: 3, Y: 2}, c)
}
