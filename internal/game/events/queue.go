package events

import "github.com/google/uuid"

// Queue collects the events raised during one frame. It is drained once at
// the end of the frame.
type Queue struct {
	frame   uint64
	pending []Event
}

// Begin starts a new frame. Events pushed afterwards carry its number.
func (q *Queue) Begin(frame uint64) {
	q.frame = frame
}

func (q *Queue) Push(e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Frame = q.frame
	q.pending = append(q.pending, e)
}

// Count reports how many pending events have type t.
func (q *Queue) Count(t Type) int {
	n := 0
	for _, e := range q.pending {
		if e.Type == t {
			n++
		}
	}
	return n
}

func (q *Queue) Len() int {
	return len(q.pending)
}

// Drain returns the pending events in push order and empties the queue.
func (q *Queue) Drain() []Event {
	out := q.pending
	q.pending = nil
	return out
}

// Filter returns the events of type t.
func Filter(evs []Event, t Type) []Event {
	var out []Event
	for _, e := range evs {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
