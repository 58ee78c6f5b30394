package actors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aspects/internal/game/world"
)

type openTiles map[world.Position]bool

func (o openTiles) Walkable(p world.Position) bool { return o[p] }

func TestImaAppearsOnFacingSide(t *testing.T) {
	tiles := openTiles{{X: 7, Y: 3}: true, {X: 3, Y: 3}: true}
	var ima Ima

	assert.True(t, ima.Appear(world.Position{X: 5, Y: 3}, false, tiles))
	assert.Equal(t, world.Position{X: 7, Y: 3}, ima.Position)
	assert.True(t, ima.FacesLeft, "faces back towards the player")

	assert.True(t, ima.Appear(world.Position{X: 5, Y: 3}, true, tiles))
	assert.Equal(t, world.Position{X: 3, Y: 3}, ima.Position)
	assert.False(t, ima.FacesLeft)
}

func TestImaFallsBackWhenBlocked(t *testing.T) {
	var ima Ima

	assert.True(t, ima.Appear(world.Position{X: 5, Y: 3}, false, openTiles{{X: 3, Y: 3}: true}))
	assert.Equal(t, world.Position{X: 3, Y: 3}, ima.Position)

	assert.True(t, ima.Appear(world.Position{X: 5, Y: 3}, false, openTiles{{X: 6, Y: 3}: true}))
	assert.Equal(t, world.Position{X: 6, Y: 3}, ima.Position)
}

func TestImaDismiss(t *testing.T) {
	var ima Ima
	assert.False(t, ima.Appear(world.Position{}, false, openTiles{}))
	assert.False(t, ima.Dismiss())

	ima.Appear(world.Position{X: 1}, false, openTiles{{X: 3}: true})
	assert.True(t, ima.Dismiss())
	assert.False(t, ima.Visible)
}
