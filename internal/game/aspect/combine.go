package aspect

type pair struct {
	a, b Aspect
}

// Rule is one forward-discoverable combination.
type Rule struct {
	Left   Aspect `json:"left"`
	Right  Aspect `json:"right"`
	Result Aspect `json:"result"`
}

var rules = []Rule{
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

var table = func() map[pair]Aspect {
	m := make(map[pair]Aspect, len(rules))
	for _, r := range rules {
		m[pair{r.Left, r.Right}] = r.Result
	}
	return m
}()

// Combine resolves two aspects into the aspect they discover. Operand order
// does not matter. When no rule covers the pair it returns NotImplemented
// and false.
func Combine(a, b Aspect) (Aspect, bool) {
	if a.IsZero() || b.IsZero() {
		return NotImplemented, false
	}
	if r, ok := table[pair{a, b}]; ok {
		return r, true
	}
	if r, ok := table[pair{b, a}]; ok {
		return r, true
	}
	return NotImplemented, false
}

// Rules returns a copy of the rule table in authoring order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
