package director

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"aspects/internal/game"
	"aspects/internal/game/aspect"
	"aspects/internal/game/ending"
	"aspects/internal/game/world"
)

// ErrNoPlan is returned when no sequence of combinations reaches the
// requested ending from the given garden.
var ErrNoPlan = errors.New("no combination sequence reaches that ending")

// Step is one combination: stage LeftSocket and RightSocket, then confirm.
type Step struct {
	LeftSocket  string        `json:"left_socket"`
	RightSocket string        `json:"right_socket"`
	Left        aspect.Aspect `json:"left"`
	Right       aspect.Aspect `json:"right"`
	Result      aspect.Aspect `json:"result"`
}

func (s Step) String() string {
	return fmt.Sprintf("%s (%s) + %s (%s) = %s", s.LeftSocket, s.Left, s.RightSocket, s.Right, s.Result)
}

type slot struct {
	id     string
	side   world.Side
	x, y   int
	aspect aspect.Aspect
}

// garden is the planner's copy of the sockets, ordered the way the world
// writes combined aspects back.
type garden []slot

func gardenFrom(snap game.Snapshot) (garden, error) {
	g := make(garden, 0, len(snap.Sockets))
	for _, s := range snap.Sockets {
		side, err := world.ParseSide(s.Side)
		if err != nil {
			return nil, err
		}
		var a aspect.Aspect
		if s.Aspect != "" {
			if a, err = aspect.Parse(s.Aspect); err != nil {
				return nil, fmt.Errorf("socket %s: %w", s.ID, err)
			}
		}
		g = append(g, slot{id: s.ID, side: side, x: s.X, y: s.Y, aspect: a})
	}
	sort.SliceStable(g, func(i, j int) bool {
		if g[i].x != g[j].x {
			return g[i].x < g[j].x
		}
		if g[i].y != g[j].y {
			return g[i].y < g[j].y
		}
		return g[i].id < g[j].id
	})
	return g, nil
}

func (g garden) key() string {
	var b strings.Builder
	for _, s := range g {
		b.WriteString(s.aspect.String())
		b.WriteByte('|')
	}
	return b.String()
}

func (g garden) placed() mapset.Set[aspect.Aspect] {
	set := mapset.New[aspect.Aspect]()
	for _, s := range g {
		if !s.aspect.IsZero() {
			set.Put(s.aspect)
		}
	}
	return set
}

func (g garden) full() bool {
	for _, s := range g {
		if s.aspect.IsZero() {
			return false
		}
	}
	return true
}

func (g garden) aspects() []aspect.Aspect {
	out := make([]aspect.Aspect, 0, len(g))
	for _, s := range g {
		out = append(out, s.aspect)
	}
	return out
}

// place mirrors world.PlaceCombined on a copy.
func (g garden) place(a aspect.Aspect) garden {
	next := make(garden, len(g))
	copy(next, g)
	filled := map[world.Side]bool{}
	for i := range next {
		if next[i].aspect.IsZero() && !filled[next[i].side] {
			next[i].aspect = a
			filled[next[i].side] = true
		}
	}
	return next
}

// moves lists every confirmable combination, one per distinct aspect pair.
func (g garden) moves() []Step {
	placed := g.placed()
	seen := mapset.New[[2]aspect.Aspect]()
	var out []Step
	for _, top := range g {
		if top.side != world.Top || top.aspect.IsZero() {
			continue
		}
		for _, bottom := range g {
			if bottom.side != world.Bottom || bottom.aspect.IsZero() {
				continue
			}
			pair := [2]aspect.Aspect{top.aspect, bottom.aspect}
			if seen.Has(pair) {
				continue
			}
			seen.Put(pair)
			result, ok := aspect.Combine(top.aspect, bottom.aspect)
			if !ok || placed.Has(result) {
				continue
			}
			out = append(out, Step{
				LeftSocket:  top.id,
				RightSocket: bottom.id,
				Left:        top.aspect,
				Right:       bottom.aspect,
				Result:      result,
			})
		}
	}
	return out
}

type planner struct {
	want      ending.Ending
	threshold int
	// dead holds gardens already shown not to reach want.
	dead mapset.Set[string]
}

func (p *planner) search(g garden) ([]Step, bool) {
	if g.full() {
		got, _ := ending.Evaluate(g.aspects(), p.threshold)
		return nil, got == p.want
	}
	key := g.key()
	if p.dead.Has(key) {
		return nil, false
	}
	for _, m := range g.moves() {
		if rest, ok := p.search(g.place(m.Result)); ok {
			return append([]Step{m}, rest...), true
		}
	}
	p.dead.Put(key)
	return nil, false
}

// Plan finds combinations that fill the garden in snap and end with want.
// Steps are returned in play order.
func Plan(snap game.Snapshot, want ending.Ending, threshold int) ([]Step, error) {
	if threshold <= 0 {
		threshold = ending.DefaultThreshold
	}
	g, err := gardenFrom(snap)
	if err != nil {
		return nil, err
	}
	p := &planner{want: want, threshold: threshold, dead: mapset.New[string]()}
	steps, ok := p.search(g)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPlan, want)
	}
	return steps, nil
}

// Next suggests the combination to try now. It prefers a step toward the
// good ending and falls back to any confirmable pair. A full garden has
// nothing left to suggest.
func Next(snap game.Snapshot, threshold int) (Step, bool) {
	g, err := gardenFrom(snap)
	if err != nil || g.full() {
		return Step{}, false
	}
	if steps, err := Plan(snap, ending.GoodEnding, threshold); err == nil {
		return steps[0], true
	}
	moves := g.moves()
	if len(moves) == 0 {
		return Step{}, false
	}
	return moves[0], true
}
