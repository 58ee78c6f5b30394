package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"aspects/internal/game/events"
)

// note is one plucked tone in a cue.
type note struct {
	freq   float64
	length time.Duration
	gain   float64
}

// pluck is a decaying sine with a soft second harmonic, close enough to a
// koto string for a terminal game.
type pluck struct {
	note
	rate     beep.SampleRate
	position int
	total    int
}

func newPluck(n note, rate beep.SampleRate) *pluck {
	return &pluck{note: n, rate: rate, total: rate.N(n.length)}
}

func (p *pluck) Stream(samples [][2]float64) (int, bool) {
	if p.position >= p.total {
		return 0, false
	}
	for i := range samples {
		if p.position >= p.total {
			return i, true
		}
		t := float64(p.position) / float64(p.rate)
		decay := math.Exp(-4 * float64(p.position) / float64(p.total))
		v := math.Sin(2*math.Pi*p.freq*t) + 0.3*math.Sin(4*math.Pi*p.freq*t)
		v *= p.gain * decay / 1.3
		samples[i][0] = v
		samples[i][1] = v
		p.position++
	}
	return len(samples), true
}

func (p *pluck) Err() error { return nil }

// Pentatonic steps used by the combine arpeggio.
var scale = []float64{293.66, 349.23, 392.00, 440.00, 523.25}

func notesFor(cue events.Cue) []note {
	switch cue {
	case events.CueSelect:
		return []note{{freq: 587.33, length: 90 * time.Millisecond, gain: 0.2}}
	case events.CueDeselect:
		return []note{{freq: 392.00, length: 90 * time.Millisecond, gain: 0.2}}
	case events.CueBlocked:
		return []note{
			{freq: 146.83, length: 120 * time.Millisecond, gain: 0.25},
			{freq: 138.59, length: 160 * time.Millisecond, gain: 0.25},
		}
	case events.CueCombine:
		out := make([]note, 0, len(scale))
		for _, f := range scale {
			out = append(out, note{freq: f, length: 110 * time.Millisecond, gain: 0.2})
		}
		return out
	case events.CueKoto:
		return []note{
			{freq: 220.00, length: 400 * time.Millisecond, gain: 0.3},
			{freq: 329.63, length: 600 * time.Millisecond, gain: 0.25},
		}
	}
	return nil
}

// Streamer renders a cue as one sequence. Unknown cues give nil.
func Streamer(cue events.Cue, rate beep.SampleRate) beep.Streamer {
	notes := notesFor(cue)
	if len(notes) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, newPluck(n, rate))
	}
	return beep.Seq(parts...)
}
