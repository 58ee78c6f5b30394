package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"aspects/internal/game/actors"
	"aspects/internal/game/aspect"
	"aspects/internal/game/combiner"
	"aspects/internal/game/ending"
	"aspects/internal/game/events"
	"aspects/internal/game/world"
)

// Options configure a new session.
type Options struct {
	// Level to play. The embedded garden is used when nil.
	Level       *world.Level
	Threshold   int
	SkipIntro   bool
	HistorySize int
}

// Session owns one playthrough. It is stepped one frame at a time and is
// not safe for concurrent use.
type Session struct {
	id        string
	threshold int

	world    *world.World
	combiner *combiner.Combiner
	state    *fsm.FSM
	queue    events.Queue
	history  *History
	ima      actors.Ima

	frame     uint64
	elapsed   time.Duration
	skipIntro bool
	facesLeft bool
	target    combiner.Target

	// dialogue is the node currently on screen, empty when none is.
	dialogue     ending.Dialogue
	introPlayed  bool
	endingPlayed bool
	ended        bool
	endingResult ending.Ending
	endingScore  int
}

func NewSession(opts Options) (*Session, error) {
	level := opts.Level
	if level == nil {
		var err error
		level, err = defaultLevel()
		if err != nil {
			return nil, err
		}
	}

	w, err := world.New(level)
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = ending.DefaultThreshold
	}
	historySize := opts.HistorySize
	if historySize <= 0 {
		historySize = 20
	}

	s := &Session{
		id:        uuid.NewString(),
		threshold: threshold,
		world:     w,
		combiner:  combiner.New(),
		history:   NewHistory(historySize),
		skipIntro: opts.SkipIntro,
	}
	s.state = newStateMachine(&s.queue)
	return s, nil
}

func defaultLevel() (*world.Level, error) {
	level, err := world.DefaultLevel()
	if err != nil {
		return nil, fmt.Errorf("failed to load default level: %w", err)
	}
	return level, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() string { return s.state.Current() }

func (s *Session) History() *History { return s.history }

func (s *Session) World() *world.World { return s.world }

func (s *Session) Combiner() *combiner.Combiner { return s.combiner }

// Step advances the session by one frame of length dt.
func (s *Session) Step(ctx context.Context, dt time.Duration, in Input) Frame {
	s.frame++
	s.queue.Begin(s.frame)

	s.updateState(ctx, dt, in)
	s.move(in.Move)
	s.target = s.resolveTarget(in.Target)

	var frameErr error
	if in.Confirm && s.target.Kind == combiner.TargetSocket {
		frameErr = s.selectSocket(ctx, s.target.SocketID)
	}

	s.combiner.UpdatePreview(s.world.Placed())

	if in.Confirm && s.target.Kind == combiner.TargetCombiner {
		frameErr = s.confirm(ctx)
	}

	s.writeBack()
	s.evaluate(ctx)

	return Frame{
		Events:   s.queue.Drain(),
		Snapshot: s.Snapshot(),
		Err:      frameErr,
	}
}

func (s *Session) updateState(ctx context.Context, dt time.Duration, in Input) {
	if in.DialogueDone && s.dialogue != "" {
		s.closeDialogue(ctx)
	}

	switch s.state.Current() {
	case StateLoading:
		if s.skipIntro {
			s.advance(ctx, eventSkip)
		} else {
			s.advance(ctx, eventLoaded)
		}
	case StateIntro:
		if s.introPlayed {
			return
		}
		s.elapsed += dt
		if s.elapsed > introDelay {
			s.introPlayed = true
			s.openDialogue(ending.Intro)
		}
	case StateEnding:
		if s.endingPlayed {
			return
		}
		s.elapsed += dt
		if s.elapsed > endingDelay {
			s.endingPlayed = true
			s.openDialogue(ending.ForEnding(s.endingResult))
		}
	}
}

func (s *Session) openDialogue(node ending.Dialogue) {
	s.dialogue = node
	s.queue.Push(events.Event{Type: events.NarratorDialogue, Node: node})
}

func (s *Session) closeDialogue(ctx context.Context) {
	closed := s.dialogue
	s.dialogue = ""
	if s.ima.Dismiss() {
		s.queue.Push(events.Event{Type: events.ImaDismissed})
	}

	switch {
	case closed == ending.Intro:
		s.advance(ctx, eventBegin)
		s.summonIma(ending.Meeting)
	case s.state.Current() == StateEnding && closed == ending.ForEnding(s.endingResult) && s.endingPlayed:
		s.advance(ctx, eventCloseOut)
	}
}

func (s *Session) summonIma(node ending.Dialogue) {
	player, ok := s.world.Player()
	if !ok {
		return
	}
	if s.ima.Appear(player, s.facesLeft, s.world) {
		s.queue.Push(events.Event{Type: events.ImaAppeared, Position: s.ima.Position})
	}
	s.queue.Push(events.Event{Type: events.SoundCue, Cue: events.CueKoto})
	s.openDialogue(node)
}

// interactive reports whether the player may act this frame.
func (s *Session) interactive() bool {
	return s.state.Current() == StateGaming && s.dialogue == ""
}

func (s *Session) move(d Direction) {
	if d == Stay || !s.interactive() {
		return
	}
	dx, dy := d.delta()
	if dx != 0 {
		s.facesLeft = dx < 0
	}
	s.world.MovePlayer(dx, dy)
}

func (s *Session) selectSocket(ctx context.Context, id string) error {
	sock, ok := s.world.Socket(id)
	if !ok {
		return fmt.Errorf("unknown socket %q", id)
	}
	out, err := s.combiner.Toggle(ctx, sock.Socket, &s.queue)
	if err != nil {
		return err
	}
	if out != combiner.Ignored {
		s.history.AddPlayerAction(fmt.Sprintf("%s %s", out, sock.Aspect))
	}
	return nil
}

func (s *Session) confirm(ctx context.Context) error {
	_, err := s.combiner.Confirm(ctx, s.world.Placed(), &s.queue)
	if err != nil && !errors.Is(err, combiner.ErrIncomplete) {
		s.history.AddError(err)
	}
	return err
}

// writeBack places the aspect discovered this frame into the sockets.
func (s *Session) writeBack() {
	if s.queue.Count(events.CombinedAspect) == 0 {
		return
	}
	result := s.combiner.LastCombined
	for _, sock := range s.world.PlaceCombined(result) {
		s.queue.Push(events.Event{Type: events.SocketFilled, Socket: sock.ID, Aspect: sock.Aspect})
	}
	s.queue.Push(events.Event{Type: events.SoundCue, Cue: events.CueCombine, Aspect: result})
	s.history.AddDiscovery(result)
	s.summonIma(ending.ForAspect(result))
}

// evaluate recomputes fullness and triggers the ending once the garden is
// full during play. A level that starts full ends as soon as the intro closes.
func (s *Session) evaluate(ctx context.Context) {
	full := s.world.Full()
	s.combiner.AllFull = full
	if !full || s.ended || s.state.Current() != StateGaming {
		return
	}

	_, span := otel.Tracer("game").Start(ctx, "game.evaluate_ending")
	defer span.End()

	s.ended = true
	s.endingResult, s.endingScore = ending.Evaluate(s.world.Aspects(), s.threshold)
	span.SetAttributes(
		attribute.String("ending.result", s.endingResult.String()),
		attribute.Int("ending.score", s.endingScore),
	)

	s.queue.Push(events.Event{Type: events.EndingTriggered, Ending: s.endingResult, Score: s.endingScore})
	s.advance(ctx, eventFinish)
}

// Ending returns the classified ending once the garden is full.
func (s *Session) Ending() (ending.Ending, int, bool) {
	return s.endingResult, s.endingScore, s.ended
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Session:      s.id,
		Frame:        s.frame,
		State:        s.state.Current(),
		Level:        s.world.Name(),
		Tiles:        s.world.Tiles(),
		Left:         name(s.combiner.Left),
		Right:        name(s.combiner.Right),
		Preview:      name(s.combiner.Preview),
		LastCombined: name(s.combiner.LastCombined),
		Target:       s.target.String(),
		AllFull:      s.combiner.AllFull,
		Dialogue:     string(s.dialogue),
	}
	if err := s.combiner.Blocked.Err(); err != nil {
		snap.Blocked = err.Error()
	}
	if p, ok := s.world.Player(); ok {
		snap.Player = p
	}
	if p, ok := s.world.Combiner(); ok {
		snap.Combiner = p
	}
	if s.ended {
		snap.Ending = s.endingResult.String()
		snap.Score = s.endingScore
	}
	if s.ima.Visible {
		p := s.ima.Position
		snap.Ima = &p
	}
	for _, sock := range s.world.Sockets() {
		snap.Sockets = append(snap.Sockets, SocketState{
			ID:     sock.ID,
			Side:   sock.Side.String(),
			Aspect: name(sock.Aspect),
			X:      sock.Position.X,
			Y:      sock.Position.Y,
		})
	}
	return snap
}

// Discovered lists the derived aspects currently in the garden.
func (s *Session) Discovered() []aspect.Aspect {
	var out []aspect.Aspect
	for _, r := range aspect.Rules() {
		if s.world.Holds(r.Result) {
			out = append(out, r.Result)
		}
	}
	return out
}
