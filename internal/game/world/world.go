package world

import (
	"sort"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/zyedidia/generic/mapset"

	"aspects/internal/game/aspect"
)

// SocketView is a socket together with where it sits on the map.
type SocketView struct {
	Socket
	Position Position
}

// World owns the entities of one level.
type World struct {
	ecs   donburi.World
	level *Level

	sockets  *donburi.Query
	combiner *donburi.Query
	player   *donburi.Query
}

// New spawns the level's entities into a fresh ECS world.
func New(level *Level) (*World, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		ecs:      donburi.NewWorld(),
		level:    level,
		sockets:  donburi.NewQuery(filter.Contains(SocketComponent, PositionComponent)),
		combiner: donburi.NewQuery(filter.Contains(CombinerTag, PositionComponent)),
		player:   donburi.NewQuery(filter.Contains(PlayerTag, PositionComponent)),
	}

	for _, s := range level.Sockets {
		entry := w.ecs.Entry(w.ecs.Create(SocketComponent, PositionComponent))
		SocketComponent.SetValue(entry, Socket{ID: s.ID, Aspect: s.Aspect, Side: s.Side})
		PositionComponent.SetValue(entry, Position{X: s.X, Y: s.Y})
	}

	entry := w.ecs.Entry(w.ecs.Create(CombinerTag, PositionComponent))
	PositionComponent.SetValue(entry, level.Combiner)

	entry = w.ecs.Entry(w.ecs.Create(PlayerTag, PositionComponent))
	PositionComponent.SetValue(entry, level.Player)

	return w, nil
}

func (w *World) Name() string { return w.level.Name }

func (w *World) Tiles() []string { return w.level.Tiles }

func (w *World) Width() int { return w.level.Width() }

func (w *World) Height() int { return w.level.Height() }

// Sockets lists every socket ordered top to bottom, then left to right.
func (w *World) Sockets() []SocketView {
	var out []SocketView
	w.sockets.Each(w.ecs, func(e *donburi.Entry) {
		out = append(out, SocketView{
			Socket:   *SocketComponent.Get(e),
			Position: *PositionComponent.Get(e),
		})
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Position, out[j].Position
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Socket looks a socket up by id.
func (w *World) Socket(id string) (SocketView, bool) {
	for _, s := range w.Sockets() {
		if s.ID == id {
			return s, true
		}
	}
	return SocketView{}, false
}

// Aspects returns the aspect of every socket, empty ones included.
func (w *World) Aspects() []aspect.Aspect {
	var out []aspect.Aspect
	w.sockets.Each(w.ecs, func(e *donburi.Entry) {
		out = append(out, SocketComponent.Get(e).Aspect)
	})
	return out
}

// Placed is the set of aspects some socket already carries.
func (w *World) Placed() mapset.Set[aspect.Aspect] {
	set := mapset.New[aspect.Aspect]()
	for _, a := range w.Aspects() {
		if !a.IsZero() {
			set.Put(a)
		}
	}
	return set
}

// Holds reports whether some socket already carries a.
func (w *World) Holds(a aspect.Aspect) bool {
	return w.Placed().Has(a)
}

func (w *World) EmptyCount() int {
	n := 0
	w.sockets.Each(w.ecs, func(e *donburi.Entry) {
		if SocketComponent.Get(e).Empty() {
			n++
		}
	})
	return n
}

// Full reports whether no socket is waiting for an aspect.
func (w *World) Full() bool {
	return w.EmptyCount() == 0
}

// PlaceCombined writes a into the leftmost empty socket of each side and
// returns the sockets it filled. A side without an empty socket is skipped.
func (w *World) PlaceCombined(a aspect.Aspect) []SocketView {
	if a.IsZero() {
		return nil
	}

	targets := map[Side]*donburi.Entry{}
	w.sockets.Each(w.ecs, func(e *donburi.Entry) {
		s := SocketComponent.Get(e)
		if !s.Empty() {
			return
		}
		cur, ok := targets[s.Side]
		if !ok || leftOf(e, cur) {
			targets[s.Side] = e
		}
	})

	var filled []SocketView
	for _, side := range []Side{Top, Bottom} {
		e, ok := targets[side]
		if !ok {
			continue
		}
		s := SocketComponent.Get(e)
		s.Aspect = a
		filled = append(filled, SocketView{Socket: *s, Position: *PositionComponent.Get(e)})
	}
	return filled
}

func leftOf(a, b *donburi.Entry) bool {
	pa, pb := PositionComponent.Get(a), PositionComponent.Get(b)
	if pa.X != pb.X {
		return pa.X < pb.X
	}
	if pa.Y != pb.Y {
		return pa.Y < pb.Y
	}
	return SocketComponent.Get(a).ID < SocketComponent.Get(b).ID
}

// Combiner returns the combiner position, if the level has one.
func (w *World) Combiner() (Position, bool) {
	e, ok := w.combiner.First(w.ecs)
	if !ok {
		return Position{}, false
	}
	return *PositionComponent.Get(e), true
}

// Player returns the player position, if the player exists.
func (w *World) Player() (Position, bool) {
	e, ok := w.player.First(w.ecs)
	if !ok {
		return Position{}, false
	}
	return *PositionComponent.Get(e), true
}

// MovePlayer steps the player by (dx, dy) when the destination is walkable.
func (w *World) MovePlayer(dx, dy int) bool {
	e, ok := w.player.First(w.ecs)
	if !ok {
		return false
	}
	pos := PositionComponent.Get(e)
	next := Position{X: pos.X + dx, Y: pos.Y + dy}
	if !w.Walkable(next) {
		return false
	}
	*pos = next
	return true
}

// Walkable reports whether p is a floor tile not taken by a socket or the
// combiner.
func (w *World) Walkable(p Position) bool {
	if !w.level.Floor(p) {
		return false
	}
	if c, ok := w.Combiner(); ok && c == p {
		return false
	}
	blocked := false
	w.sockets.Each(w.ecs, func(e *donburi.Entry) {
		if *PositionComponent.Get(e) == p {
			blocked = true
		}
	})
	return !blocked
}
