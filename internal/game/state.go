package game

import (
	"context"

	"github.com/looplab/fsm"

	"aspects/internal/game/events"
)

// Game phases.
const (
	StateLoading  = "loading"
	StateIntro    = "intro"
	StateGaming   = "gaming"
	StateEnding   = "ending"
	StateGameOver = "gameover"
)

const (
	eventLoaded   = "loaded"
	eventSkip     = "skip"
	eventBegin    = "begin"
	eventFinish   = "finish"
	eventCloseOut = "close_out"
)

func newStateMachine(q *events.Queue) *fsm.FSM {
	return fsm.NewFSM(
		StateLoading,
		fsm.Events{
			{Name: eventLoaded, Src: []string{StateLoading}, Dst: StateIntro},
			{Name: eventSkip, Src: []string{StateLoading}, Dst: StateGaming},
			{Name: eventBegin, Src: []string{StateIntro}, Dst: StateGaming},
			{Name: eventFinish, Src: []string{StateGaming}, Dst: StateEnding},
			{Name: eventCloseOut, Src: []string{StateEnding}, Dst: StateGameOver},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				q.Push(events.Event{Type: events.StateChanged, From: e.Src, To: e.Dst})
			},
		},
	)
}

// advance fires event when the machine allows it.
func (s *Session) advance(ctx context.Context, event string) {
	if !s.state.Can(event) {
		return
	}
	if err := s.state.Event(ctx, event); err != nil {
		s.history.AddError(err)
		return
	}
	s.elapsed = 0
}
