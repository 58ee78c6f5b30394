package events

import (
	"fmt"

	"aspects/internal/game/aspect"
	"aspects/internal/game/ending"
	"aspects/internal/game/world"
)

// Type is the canonical kind of a game event.
type Type string

const (
	CombinedAspect   Type = "combined_aspect"
	SocketFilled     Type = "socket_filled"
	SoundCue         Type = "sound_cue"
	EndingTriggered  Type = "ending_triggered"
	NarratorDialogue Type = "narrator_dialogue"
	ImaAppeared      Type = "ima_appeared"
	ImaDismissed     Type = "ima_dismissed"
	StateChanged     Type = "state_changed"
)

// Cue names a short sound the presentation layer may play.
type Cue string

const (
	CueSelect   Cue = "select"
	CueDeselect Cue = "deselect"
	CueCombine  Cue = "combine"
	CueBlocked  Cue = "blocked"
	CueKoto     Cue = "koto"
)

// Event is one thing that happened during a frame. Only the fields relevant
// to its Type are set.
type Event struct {
	ID       string
	Type     Type
	Frame    uint64
	Socket   string
	Aspect   aspect.Aspect
	Cue      Cue
	Ending   ending.Ending
	Score    int
	Node     ending.Dialogue
	Position world.Position
	From, To string
}

// String renders the event for logs and the history panel.
func (e Event) String() string {
	switch e.Type {
	case CombinedAspect:
		return fmt.Sprintf("discovered %s", e.Aspect)
	case SocketFilled:
		return fmt.Sprintf("%s now holds %s", e.Socket, e.Aspect)
	case SoundCue:
		return fmt.Sprintf("sound %s", e.Cue)
	case EndingTriggered:
		return fmt.Sprintf("ending %s (score %d)", e.Ending, e.Score)
	case NarratorDialogue:
		return fmt.Sprintf("narrator plays %s", e.Node)
	case ImaAppeared:
		return fmt.Sprintf("Ima appears at %d,%d", e.Position.X, e.Position.Y)
	case ImaDismissed:
		return "Ima fades"
	case StateChanged:
		return fmt.Sprintf("state %s -> %s", e.From, e.To)
	}
	return string(e.Type)
}
