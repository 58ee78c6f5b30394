package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"aspects/internal/audio"
	"aspects/internal/game"
	"aspects/internal/game/combiner"
	"aspects/internal/game/events"
	"aspects/internal/game/narration"
)

// maxFrame caps dt after the terminal was suspended.
const maxFrame = 250 * time.Millisecond

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameTickMsg:
		return m.handleFrame(msg)
	case narrationMsg:
		return m.handleNarration(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) handleFrame(msg frameTickMsg) (tea.Model, tea.Cmd) {
	dt := m.frame
	if !m.lastTick.IsZero() {
		dt = msg.at.Sub(m.lastTick)
	}
	m.lastTick = msg.at
	if dt > maxFrame {
		dt = maxFrame
	}

	f := m.session.Step(m.ctx, dt, m.pending)
	m.pending = game.Input{}
	m.snap = f.Snapshot
	m.animationFrame++

	if f.Err != nil && !errors.Is(f.Err, combiner.ErrIncomplete) {
		m.notice = f.Err.Error()
		m.loggers.Debug.Printf("Frame %d: %v", f.Snapshot.Frame, f.Err)
	}

	cmds := []tea.Cmd{frameTimer(m.frame)}
	audio.PlayEvents(m.audio, f.Events)
	for _, e := range f.Events {
		if cmd := m.applyEvent(e); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	for _, t := range m.credits {
		t.Advance(dt)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) applyEvent(e events.Event) tea.Cmd {
	m.loggers.Debug.Println(e.String())

	switch e.Type {
	case events.SocketFilled:
		m.addMessage(fmt.Sprintf("%s now holds %s", e.Socket, e.Aspect))
	case events.CombinedAspect:
		m.notice = ""
		m.addMessage(fmt.Sprintf("Discovered %s", m.snap.LastCombined))
	case events.EndingTriggered:
		m.addMessage(fmt.Sprintf("The garden is full. Score %d.", e.Score))
	case events.StateChanged:
		m.loggers.Debug.Printf("State %s -> %s", e.From, e.To)
		if e.To == game.StateGameOver {
			m.credits = narration.EndingCredits()
		}
	case events.NarratorDialogue:
		m.dialogue = &dialogueBox{node: e.Node, loading: true}
		return narrateCmd(m.ctx, m.narrator, e.Node, m.snap, m.session.History().GetEntries(), m.loggers.Debug)
	}
	return nil
}

func (m Model) handleNarration(msg narrationMsg) (tea.Model, tea.Cmd) {
	if m.dialogue == nil || m.dialogue.node != msg.node {
		return m, nil
	}
	m.dialogue.loading = false
	if msg.err != nil || len(msg.lines) == 0 {
		m.dialogue.lines = []string{"..."}
		if msg.err != nil {
			m.session.History().AddError(msg.err)
		}
		return m, nil
	}
	m.dialogue.lines = msg.lines
	for _, line := range msg.lines {
		m.session.History().AddNarratorResponse(line)
	}
	return m, nil
}

func (m Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.log.Width = logWidth()
	m.log.Height = logHeight(msg.Height)
	m.log.SetContent(m.logContent())
	m.log.GotoBottom()
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.dialogue != nil {
		if key.Matches(msg, m.keys.Confirm) && !m.dialogue.loading {
			if m.dialogue.last() {
				m.dialogue = nil
				m.pending.DialogueDone = true
			} else {
				m.dialogue.index++
			}
		}
		return m, nil
	}

	if m.snap.State == game.StateGameOver {
		if key.Matches(msg, m.keys.Confirm) && m.creditsDone() {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.pending.Move = game.Up
	case key.Matches(msg, m.keys.Down):
		m.pending.Move = game.Down
	case key.Matches(msg, m.keys.Left):
		m.pending.Move = game.Left
	case key.Matches(msg, m.keys.Right):
		m.pending.Move = game.Right
	case key.Matches(msg, m.keys.Confirm):
		m.pending.Confirm = true
	}
	return m, nil
}

func (m Model) creditsDone() bool {
	for _, t := range m.credits {
		if !t.Done() {
			return false
		}
	}
	return len(m.credits) > 0
}

func (m *Model) addMessage(s string) {
	m.messages = append(m.messages, s)
	if len(m.messages) > 100 {
		m.messages = m.messages[len(m.messages)-100:]
	}
	m.log.SetContent(m.logContent())
	m.log.GotoBottom()
}
