package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aspects/internal/audio"
	"aspects/internal/debug"
	"aspects/internal/game"
	"aspects/internal/game/ending"
	"aspects/internal/game/events"
	"aspects/internal/game/narration"
	"aspects/internal/game/world"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	session, err := game.NewSession(game.Options{SkipIntro: true})
	require.NoError(t, err)
	script, err := narration.DefaultScript()
	require.NoError(t, err)

	m := NewModel(session, narration.Static{Script: script}, audio.Silent{}, GameLoggers{Debug: debug.NewLogger(false, "")}, 20)
	return tick(m)
}

func tick(m Model) Model {
	next, _ := m.Update(frameTickMsg{at: time.Now()})
	return next.(Model)
}

func press(m Model, k tea.KeyMsg) Model {
	next, _ := m.Update(k)
	return tick(next.(Model))
}

func TestKeysMoveAndSelect(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, game.StateGaming, m.Snapshot().State)

	for i := 0; i < 3; i++ {
		m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, world.Position{X: 2, Y: 2}, m.Snapshot().Player)
	assert.Equal(t, "socket top-1", m.Snapshot().Target)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Joy", m.Snapshot().Left)
	assert.Contains(t, m.View(), "Joy")
}

func TestDialogueAdvancesThenCloses(t *testing.T) {
	m := newTestModel(t)

	cmd := m.applyEvent(events.Event{Type: events.NarratorDialogue, Node: ending.Meeting})
	require.NotNil(t, cmd)
	require.True(t, m.dialogue.loading)

	msg := cmd()
	next, _ := m.Update(msg)
	m = next.(Model)
	require.NotNil(t, m.dialogue)
	require.False(t, m.dialogue.loading)
	lines := len(m.dialogue.lines)
	require.Greater(t, lines, 0)

	for i := 0; i < lines-1; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = next.(Model)
		require.NotNil(t, m.dialogue)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Nil(t, m.dialogue)
	assert.True(t, m.pending.DialogueDone)
}

func TestStaleNarrationIsDropped(t *testing.T) {
	m := newTestModel(t)
	m.applyEvent(events.Event{Type: events.NarratorDialogue, Node: ending.Meeting})

	next, _ := m.Update(narrationMsg{node: ending.Intro, lines: []string{"late"}})
	m = next.(Model)
	assert.True(t, m.dialogue.loading)
}

func TestMovementIgnoredWhileDialogueOpen(t *testing.T) {
	m := newTestModel(t)
	m.applyEvent(events.Event{Type: events.NarratorDialogue, Node: ending.Meeting})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	assert.Equal(t, game.Stay, m.pending.Move)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
