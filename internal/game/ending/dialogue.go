package ending

import "aspects/internal/game/aspect"

// Dialogue names a narrator node: the intro, one node per ending and one
// per discovered aspect.
type Dialogue string

const (
	Intro Dialogue = "Intro"
	// Meeting is Ima's first appearance once the intro is over.
	Meeting Dialogue = "Ima"
)

// ForEnding is the node the narrator plays once the garden is full.
func ForEnding(e Ending) Dialogue {
	return Dialogue(e.String())
}

// ForAspect is the node played when a is discovered.
func ForAspect(a aspect.Aspect) Dialogue {
	return Dialogue(a.String())
}

// Nodes lists every node a script is expected to cover.
func Nodes() []Dialogue {
	out := []Dialogue{Intro, Meeting, ForEnding(GoodEnding), ForEnding(BadEndingTooPositive), ForEnding(BadEndingTooNegative)}
	seen := map[aspect.Aspect]bool{}
	for _, r := range aspect.Rules() {
		if seen[r.Result] {
			continue
		}
		seen[r.Result] = true
		out = append(out, ForAspect(r.Result))
	}
	return out
}
