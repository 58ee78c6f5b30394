package narration

import "time"

// Typewriter reveals text one rune at a time. The first rune shows after
// the start delay, each following one after interval.
type Typewriter struct {
	text     []rune
	shown    int
	interval time.Duration
	delay    time.Duration
	acc      time.Duration
}

func NewTypewriter(text string, interval, startDelay time.Duration) *Typewriter {
	return &Typewriter{text: []rune(text), interval: interval, delay: startDelay}
}

// EndingCredits are the two lines written out once the game is over.
func EndingCredits() []*Typewriter {
	return []*Typewriter{
		NewTypewriter("FIN", 250*time.Millisecond, 1500*time.Millisecond),
		NewTypewriter("Thanks for Playing", 100*time.Millisecond, 5*time.Second),
	}
}

func (t *Typewriter) Advance(dt time.Duration) {
	t.acc += dt
	for t.shown < len(t.text) {
		wait := t.interval
		if t.shown == 0 {
			wait = t.delay
		}
		if t.acc < wait {
			return
		}
		t.acc -= wait
		t.shown++
	}
}

func (t *Typewriter) Text() string {
	return string(t.text[:t.shown])
}

func (t *Typewriter) Done() bool {
	return t.shown == len(t.text)
}
