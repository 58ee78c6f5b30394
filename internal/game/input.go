package game

import (
	"time"

	"aspects/internal/game/combiner"
	"aspects/internal/game/events"
)

// Direction is a single-tile step requested for the player.
type Direction int

const (
	Stay Direction = iota
	Up
	Down
	Left
	Right
)

func (d Direction) delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Input is everything the player did since the previous frame. Target
// overrides the target resolved from the player position when set.
type Input struct {
	Move         Direction
	Confirm      bool
	DialogueDone bool
	Target       *combiner.Target
}

// Frame is the result of one Step.
type Frame struct {
	Events   []events.Event
	Snapshot Snapshot
	// Err is the reason a confirm press did nothing, if any.
	Err error
}

const (
	introDelay  = time.Second
	endingDelay = 2 * time.Second
)
