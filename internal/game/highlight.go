package game

import (
	"aspects/internal/game/combiner"
	"aspects/internal/game/world"
)

// reach is how far, in tiles, the player can interact.
const reach = 1

type candidate struct {
	target combiner.Target
	dist   int
}

// resolveTarget picks what a confirm press applies to this frame. An
// explicit override wins while the player may act; otherwise the nearest
// eligible entity within reach is highlighted.
func (s *Session) resolveTarget(override *combiner.Target) combiner.Target {
	if !s.interactive() {
		return combiner.None()
	}
	if override != nil {
		return *override
	}

	player, ok := s.world.Player()
	if !ok {
		return combiner.None()
	}

	var best *candidate
	consider := func(c candidate) {
		if best == nil || c.dist < best.dist {
			best = &c
		}
	}

	if pos, ok := s.world.Combiner(); ok && within(player, pos) {
		if s.combiner.Ready() && s.combiner.Blocked == combiner.NotBlocked {
			consider(candidate{target: combiner.Station(), dist: manhattan(player, pos)})
		}
	}
	if !s.combiner.AllFull {
		for _, sock := range s.world.Sockets() {
			if sock.Empty() || !within(player, sock.Position) {
				continue
			}
			consider(candidate{target: combiner.Socket(sock.ID), dist: manhattan(player, sock.Position)})
		}
	}

	if best == nil {
		return combiner.None()
	}
	return best.target
}

// within uses Chebyshev distance so diagonal neighbours count.
func within(a, b world.Position) bool {
	return abs(a.X-b.X) <= reach && abs(a.Y-b.Y) <= reach
}

func manhattan(a, b world.Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
