package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"aspects/internal/game/events"
)

const sampleRate = beep.SampleRate(44100)

// Player turns sound cue events into audio.
type Player interface {
	Play(events.Cue)
	Close()
}

// Silent drops every cue.
type Silent struct{}

func (Silent) Play(events.Cue) {}
func (Silent) Close()          {}

// SoundManager mixes cues onto the system speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager opens the speaker. Terminals without an audio device are
// common, so callers usually fall back to Silent when this fails.
func NewSoundManager() (*SoundManager, error) {
	sm := &SoundManager{mixer: &beep.Mixer{}}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return sm, nil
}

func (sm *SoundManager) Play(cue events.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := Streamer(cue, sampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Open returns a SoundManager, or Silent when sound is disabled or no
// device is available. The error is returned for logging only.
func Open(enabled bool) (Player, error) {
	if !enabled {
		return Silent{}, nil
	}
	sm, err := NewSoundManager()
	if err != nil {
		return Silent{}, err
	}
	return sm, nil
}

// PlayEvents plays every sound cue in evs.
func PlayEvents(p Player, evs []events.Event) {
	for _, e := range evs {
		if e.Type == events.SoundCue {
			p.Play(e.Cue)
		}
	}
}
