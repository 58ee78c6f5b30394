package combiner

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"aspects/internal/game/aspect"
	"aspects/internal/game/events"
	"aspects/internal/game/world"
)

// Occupancy states of the two combiner slots.
const (
	StateEmpty = "empty"
	StateLeft  = "left"
	StateRight = "right"
	StateBoth  = "both"
)

const (
	eventStageLeft  = "stage_left"
	eventStageRight = "stage_right"
	eventClearLeft  = "clear_left"
	eventClearRight = "clear_right"
	eventCommit     = "commit"
)

var (
	ErrIncomplete        = errors.New("combiner needs an aspect on both sides")
	ErrUndiscovered      = errors.New("these aspects do not combine into anything yet")
	ErrAlreadyDiscovered = errors.New("that aspect is already in the garden")
)

// Outcome is what a toggle did.
type Outcome int

const (
	Ignored Outcome = iota
	Selected
	Deselected
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Deselected:
		return "deselected"
	}
	return "ignored"
}

// BlockReason explains why a staged pair cannot be confirmed.
type BlockReason int

const (
	NotBlocked BlockReason = iota
	BlockedUndiscovered
	BlockedAlreadyPlaced
)

func (b BlockReason) Err() error {
	switch b {
	case BlockedUndiscovered:
		return ErrUndiscovered
	case BlockedAlreadyPlaced:
		return ErrAlreadyDiscovered
	}
	return nil
}

// Placed answers whether an aspect already sits in some socket.
type Placed interface {
	Has(a aspect.Aspect) bool
}

// Combiner holds the staged operands and the last discovery. The zero
// aspect means a side is unstaged.
type Combiner struct {
	Left         aspect.Aspect
	Right        aspect.Aspect
	Preview      aspect.Aspect
	Blocked      BlockReason
	LastCombined aspect.Aspect
	AllFull      bool

	machine *fsm.FSM
}

func New() *Combiner {
	return &Combiner{
		machine: fsm.NewFSM(
			StateEmpty,
			fsm.Events{
				{Name: eventStageLeft, Src: []string{StateEmpty, StateLeft}, Dst: StateLeft},
				{Name: eventStageLeft, Src: []string{StateRight, StateBoth}, Dst: StateBoth},
				{Name: eventStageRight, Src: []string{StateEmpty, StateRight}, Dst: StateRight},
				{Name: eventStageRight, Src: []string{StateLeft, StateBoth}, Dst: StateBoth},
				{Name: eventClearLeft, Src: []string{StateLeft}, Dst: StateEmpty},
				{Name: eventClearLeft, Src: []string{StateBoth}, Dst: StateRight},
				{Name: eventClearRight, Src: []string{StateRight}, Dst: StateEmpty},
				{Name: eventClearRight, Src: []string{StateBoth}, Dst: StateLeft},
				{Name: eventCommit, Src: []string{StateBoth}, Dst: StateEmpty},
			},
			fsm.Callbacks{},
		),
	}
}

// State is the current slot occupancy.
func (c *Combiner) State() string {
	return c.machine.Current()
}

// Ready reports whether both operands are staged.
func (c *Combiner) Ready() bool {
	return c.machine.Can(eventCommit)
}

// Toggle stages or unstages the aspect held by s. Empty sockets and a full
// garden are ignored.
func (c *Combiner) Toggle(ctx context.Context, s world.Socket, q *events.Queue) (Outcome, error) {
	if s.Empty() || c.AllFull {
		return Ignored, nil
	}

	slot, stage, unstage := &c.Left, eventStageLeft, eventClearLeft
	if s.Side == world.Bottom {
		slot, stage, unstage = &c.Right, eventStageRight, eventClearRight
	}

	if *slot == s.Aspect {
		if err := fire(ctx, c.machine, unstage); err != nil {
			return Ignored, err
		}
		*slot = aspect.NotImplemented
		q.Push(events.Event{Type: events.SoundCue, Cue: events.CueDeselect, Socket: s.ID, Aspect: s.Aspect})
		return Deselected, nil
	}

	if err := fire(ctx, c.machine, stage); err != nil {
		return Ignored, err
	}
	*slot = s.Aspect
	q.Push(events.Event{Type: events.SoundCue, Cue: events.CueSelect, Socket: s.ID, Aspect: s.Aspect})
	return Selected, nil
}

// UpdatePreview recomputes the previewed result. It never touches sockets.
func (c *Combiner) UpdatePreview(placed Placed) {
	c.Preview, c.Blocked = aspect.NotImplemented, NotBlocked
	if !c.Ready() {
		return
	}
	result, ok := aspect.Combine(c.Left, c.Right)
	switch {
	case !ok:
		c.Blocked = BlockedUndiscovered
	case placed.Has(result):
		c.Preview = result
		c.Blocked = BlockedAlreadyPlaced
	default:
		c.Preview = result
	}
}

// Confirm commits the staged pair. On success LastCombined holds the new
// aspect and a CombinedAspect event is queued; on failure nothing changes.
func (c *Combiner) Confirm(ctx context.Context, placed Placed, q *events.Queue) (aspect.Aspect, error) {
	ctx, span := otel.Tracer("combiner").Start(ctx, "combiner.confirm")
	defer span.End()

	if !c.Ready() {
		return aspect.NotImplemented, ErrIncomplete
	}
	span.SetAttributes(
		attribute.String("combiner.left", c.Left.String()),
		attribute.String("combiner.right", c.Right.String()),
	)

	result, ok := aspect.Combine(c.Left, c.Right)
	if !ok {
		q.Push(events.Event{Type: events.SoundCue, Cue: events.CueBlocked})
		return aspect.NotImplemented, ErrUndiscovered
	}
	if placed.Has(result) {
		q.Push(events.Event{Type: events.SoundCue, Cue: events.CueBlocked, Aspect: result})
		return aspect.NotImplemented, fmt.Errorf("%s: %w", result, ErrAlreadyDiscovered)
	}

	if err := fire(ctx, c.machine, eventCommit); err != nil {
		span.RecordError(err)
		return aspect.NotImplemented, err
	}
	c.LastCombined = result
	c.Left, c.Right = aspect.NotImplemented, aspect.NotImplemented
	c.Preview, c.Blocked = aspect.NotImplemented, NotBlocked

	span.SetAttributes(attribute.String("combiner.result", result.String()))
	q.Push(events.Event{Type: events.CombinedAspect, Aspect: result})
	return result, nil
}

// fire triggers an event, treating a same-state transition as success.
func fire(ctx context.Context, m *fsm.FSM, event string) error {
	err := m.Event(ctx, event)
	var same fsm.NoTransitionError
	if err == nil || errors.As(err, &same) {
		return nil
	}
	return fmt.Errorf("combiner %s from %s: %w", event, m.Current(), err)
}
