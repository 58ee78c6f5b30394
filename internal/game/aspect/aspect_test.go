package aspect

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineDefinedPairsBothOrders(t *testing.T) {
	cases := []struct {
		a, b, want Aspect
	}{
		{Joy, Sadness, Nostalgia},
		{Joy, Nostalgia, Motivation},
		{Sadness, Nostalgia, Melancholy},
		{Anger, Fear, Hatred},
		{Anger, Hatred, Vengefulness},
		{Joy, Motivation, Elation},
		{Hatred, Motivation, Pride},
		{Nostalgia, Motivation, Anticipation},
		{Anger, Pride, Envy},
		{Anticipation, Elation, Forgiveness},
	}

	for _, tc := range cases {
		t.Run(tc.a.String()+"+"+tc.b.String(), func(t *testing.T) {
			got, ok := Combine(tc.a, tc.b)
			assert.True(t, ok)
			assert.Equal(t, tc.want, got)

			swapped, ok := Combine(tc.b, tc.a)
			assert.True(t, ok)
			assert.Equal(t, tc.want, swapped)
		})
	}
}

func TestCombineUnlistedPairsAreUndiscovered(t *testing.T) {
	defined := make(map[pair]bool)
	for _, r := range Rules() {
		defined[pair{r.Left, r.Right}] = true
		defined[pair{r.Right, r.Left}] = true
	}

	for _, a := range All() {
		for _, b := range All() {
			if defined[pair{a, b}] {
				continue
			}
			got, ok := Combine(a, b)
			assert.False(t, ok, "%s+%s", a, b)
			assert.Equal(t, NotImplemented, got, "%s+%s", a, b)
		}
	}
}

func TestCombineNeverReturnsAnOperand(t *testing.T) {
	for _, a := range All() {
		for _, b := range All() {
			got, ok := Combine(a, b)
			if !ok {
				continue
			}
			assert.NotEqual(t, a, got)
			assert.NotEqual(t, b, got)
		}
	}
}

func TestCombineWithEmptyOperand(t *testing.T) {
	got, ok := Combine(NotImplemented, Joy)
	assert.False(t, ok)
	assert.Equal(t, NotImplemented, got)

	got, ok = Combine(Sadness, NotImplemented)
	assert.False(t, ok)
	assert.Equal(t, NotImplemented, got)
}

func TestRulesReturnsCopy(t *testing.T) {
	r := Rules()
	require.Len(t, r, 10)
	r[0].Result = Envy

	got, _ := Combine(Joy, Sadness)
	assert.Equal(t, Nostalgia, got)
}

func TestParse(t *testing.T) {
	a, err := Parse("joy")
	require.NoError(t, err)
	assert.Equal(t, Joy, a)

	a, err = Parse(" Forgiveness ")
	require.NoError(t, err)
	assert.Equal(t, Forgiveness, a)

	a, err = Parse("")
	require.NoError(t, err)
	assert.True(t, a.IsZero())

	a, err = Parse("NotImplemented")
	require.NoError(t, err)
	assert.True(t, a.IsZero())

	_, err = Parse("boredom")
	assert.Error(t, err)
}

func TestTextRoundTripInJSON(t *testing.T) {
	raw, err := json.Marshal(map[string]Aspect{"aspect": Melancholy})
	require.NoError(t, err)
	assert.JSONEq(t, `{"aspect":"Melancholy"}`, string(raw))

	var decoded struct {
		Aspect Aspect `json:"aspect"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"aspect":"envy"}`), &decoded))
	assert.Equal(t, Envy, decoded.Aspect)
}

func TestWeights(t *testing.T) {
	assert.Equal(t, 2, Weight(Joy))
	assert.Equal(t, 0, Weight(Sadness))
	assert.Equal(t, -4, Weight(Hatred))
	assert.Equal(t, -6, Weight(Vengefulness))
	assert.Equal(t, 6, Weight(Forgiveness))
	assert.Equal(t, 0, Weight(NotImplemented))
}

func TestValid(t *testing.T) {
	assert.False(t, NotImplemented.Valid())
	assert.True(t, Joy.Valid())
	assert.False(t, Aspect(99).Valid())
	assert.Equal(t, "Aspect(99)", Aspect(99).String())
	assert.Len(t, All(), 14)
}
