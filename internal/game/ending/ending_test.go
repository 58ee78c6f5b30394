package ending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aspects/internal/game/aspect"
)

func TestEvaluateCases(t *testing.T) {
	cases := []struct {
		name    string
		aspects []aspect.Aspect
		want    Ending
		score   int
	}{
		{"joy and forgiveness", []aspect.Aspect{aspect.Joy, aspect.Forgiveness}, BadEndingTooPositive, 8},
		{"joy and sadness", []aspect.Aspect{aspect.Joy, aspect.Sadness}, GoodEnding, 2},
		{"hatred and vengefulness", []aspect.Aspect{aspect.Hatred, aspect.Vengefulness}, BadEndingTooNegative, -10},
		{"empty sockets count zero", []aspect.Aspect{aspect.NotImplemented, aspect.Fear}, GoodEnding, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, score := Evaluate(tc.aspects, DefaultThreshold)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.score, score)
		})
	}
}

func TestClassifyBoundsAreGood(t *testing.T) {
	assert.Equal(t, GoodEnding, Classify(7, 7))
	assert.Equal(t, GoodEnding, Classify(-7, 7))
	assert.Equal(t, BadEndingTooPositive, Classify(8, 7))
	assert.Equal(t, BadEndingTooNegative, Classify(-8, 7))
	assert.Equal(t, GoodEnding, Classify(0, 0))
}

func TestParseEnding(t *testing.T) {
	for _, e := range []Ending{GoodEnding, BadEndingTooPositive, BadEndingTooNegative} {
		got, err := Parse(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
	got, err := Parse("negative")
	require.NoError(t, err)
	assert.Equal(t, BadEndingTooNegative, got)

	_, err = Parse("meh")
	assert.Error(t, err)
}

func TestNodesCoverEndingsAndDerivedAspects(t *testing.T) {
	nodes := Nodes()
	assert.Contains(t, nodes, Intro)
	assert.Contains(t, nodes, Dialogue("BadEndingTooPositive"))
	assert.Contains(t, nodes, ForAspect(aspect.Forgiveness))
	assert.NotContains(t, nodes, ForAspect(aspect.Joy))
	assert.Contains(t, nodes, Meeting)
	assert.Len(t, nodes, 15)
}
