package ending

import (
	"fmt"

	"aspects/internal/game/aspect"
)

// DefaultThreshold is the score magnitude past which an ending turns bad.
const DefaultThreshold = 7

// Ending is the narrative outcome of a filled garden.
type Ending int

const (
	GoodEnding Ending = iota
	BadEndingTooPositive
	BadEndingTooNegative
)

func (e Ending) String() string {
	switch e {
	case GoodEnding:
		return "GoodEnding"
	case BadEndingTooPositive:
		return "BadEndingTooPositive"
	case BadEndingTooNegative:
		return "BadEndingTooNegative"
	}
	return fmt.Sprintf("Ending(%d)", int(e))
}

// Parse accepts the names String returns plus the short forms good,
// positive and negative.
func Parse(s string) (Ending, error) {
	switch s {
	case "GoodEnding", "good":
		return GoodEnding, nil
	case "BadEndingTooPositive", "positive":
		return BadEndingTooPositive, nil
	case "BadEndingTooNegative", "negative":
		return BadEndingTooNegative, nil
	}
	return GoodEnding, fmt.Errorf("unknown ending %q", s)
}

func (e Ending) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Score sums the weight of every aspect. Empty entries count zero.
func Score(aspects []aspect.Aspect) int {
	total := 0
	for _, a := range aspects {
		total += aspect.Weight(a)
	}
	return total
}

// Classify maps a score to an ending. The bounds themselves are good.
func Classify(score, threshold int) Ending {
	switch {
	case score > threshold:
		return BadEndingTooPositive
	case score < -threshold:
		return BadEndingTooNegative
	default:
		return GoodEnding
	}
}

// Evaluate scores and classifies in one step.
func Evaluate(aspects []aspect.Aspect, threshold int) (Ending, int) {
	score := Score(aspects)
	return Classify(score, threshold), score
}
