package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"aspects/internal/debug"
	"aspects/internal/game"
	"aspects/internal/game/ending"
	"aspects/internal/game/narration"
)

// narrationTimeout bounds a narrator call so a slow model cannot stall a
// dialogue forever.
const narrationTimeout = 20 * time.Second

func frameTimer(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameTickMsg{at: t}
	})
}

func narrateCmd(ctx context.Context, n narration.Narrator, node ending.Dialogue, snap game.Snapshot, history []string, debugLogger *debug.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, narrationTimeout)
		defer cancel()

		start := time.Now()
		lines, err := n.Narrate(ctx, node, snap, history)
		if err != nil {
			debugLogger.Printf("Narration for %s failed: %v", node, err)
		} else {
			debugLogger.Printf("Narration for %s: %d lines in %v", node, len(lines), time.Since(start))
		}
		return narrationMsg{node: node, lines: lines, err: err}
	}
}
