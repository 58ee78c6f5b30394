package actors

import "aspects/internal/game/world"

// imaOffset is how many tiles beside the player Ima appears.
const imaOffset = 2

// Walkable reports whether a tile can hold an actor.
type Walkable interface {
	Walkable(p world.Position) bool
}

// Ima is the companion who shows up to talk about each discovery. She faces
// the player while visible.
type Ima struct {
	Visible   bool
	Position  world.Position
	FacesLeft bool
}

// Appear places Ima beside the player on the side the player faces, or on
// the other side when that tile is blocked. It reports false when neither
// side is free.
func (i *Ima) Appear(player world.Position, playerFacesLeft bool, tiles Walkable) bool {
	sign := 1
	if playerFacesLeft {
		sign = -1
	}

	for _, dx := range []int{sign * imaOffset, -sign * imaOffset, sign, -sign} {
		p := world.Position{X: player.X + dx, Y: player.Y}
		if !tiles.Walkable(p) {
			continue
		}
		i.Visible = true
		i.Position = p
		i.FacesLeft = dx > 0
		return true
	}
	return false
}

// Dismiss hides Ima. It reports whether she was visible.
func (i *Ima) Dismiss() bool {
	was := i.Visible
	i.Visible = false
	return was
}
