package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"aspects/internal/audio"
	"aspects/internal/debug"
	"aspects/internal/game"
	"aspects/internal/game/ending"
	"aspects/internal/game/narration"
	"aspects/internal/logging"
	"aspects/internal/observability"
)

type GameLoggers struct {
	Debug      *debug.Logger
	Completion *logging.CompletionLogger
}

// dialogueBox is the narrator text on screen. Lines arrive asynchronously.
type dialogueBox struct {
	node    ending.Dialogue
	lines   []string
	index   int
	loading bool
}

func (d *dialogueBox) last() bool {
	return d.index >= len(d.lines)-1
}

type Model struct {
	ctx      context.Context
	session  *game.Session
	narrator narration.Narrator
	audio    audio.Player
	loggers  GameLoggers

	keys     keyMap
	help     help.Model
	log      viewport.Model
	messages []string

	width    int
	height   int
	frame    time.Duration
	lastTick time.Time

	pending  game.Input
	snap     game.Snapshot
	dialogue *dialogueBox
	credits  []*narration.Typewriter
	notice   string

	animationFrame int
}

func NewModel(session *game.Session, narrator narration.Narrator, player audio.Player, loggers GameLoggers, fps int) Model {
	if fps <= 0 {
		fps = 20
	}
	if player == nil {
		player = audio.Silent{}
	}
	return Model{
		ctx:      observability.WithSessionID(context.Background(), session.ID()),
		session:  session,
		narrator: narrator,
		audio:    player,
		loggers:  loggers,
		keys:     defaultKeyMap(),
		help:     help.New(),
		log:      viewport.New(0, 0),
		frame:    time.Second / time.Duration(fps),
		snap:     session.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return frameTimer(m.frame)
}

// Snapshot is the state as of the last rendered frame.
func (m Model) Snapshot() game.Snapshot {
	return m.snap
}

func (m Model) Cleanup() {
	m.audio.Close()
	if m.loggers.Completion != nil {
		m.loggers.Completion.Close()
	}
	m.loggers.Debug.Close()
}

type frameTickMsg struct {
	at time.Time
}

type narrationMsg struct {
	node  ending.Dialogue
	lines []string
	err   error
}
