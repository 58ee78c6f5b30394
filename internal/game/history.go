package game

import (
	"fmt"
	"strings"

	"aspects/internal/game/aspect"
)

// History is a bounded log of what happened in a session, newest last.
type History struct {
	entries []string
	maxSize int
}

func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &History{
		entries: make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

func (h *History) AddPlayerAction(action string) {
	h.add("Player: " + action)
}

func (h *History) AddDiscovery(a aspect.Aspect) {
	h.add(fmt.Sprintf("Discovered: %s", a))
}

func (h *History) AddNarratorResponse(line string) {
	h.add("Narrator: " + line)
}

func (h *History) AddError(err error) {
	h.add("Error: " + err.Error())
}

func (h *History) add(entry string) {
	h.entries = append(h.entries, entry)

	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
}

func (h *History) GetEntries() []string {
	result := make([]string, len(h.entries))
	copy(result, h.entries)
	return result
}

// BuildContext formats a snapshot and recent history as plain text for an
// LLM prompt.
func BuildContext(s Snapshot, history []string) string {
	var b strings.Builder

	b.WriteString("GARDEN STATE:\n")
	b.WriteString(fmt.Sprintf("Phase: %s\n", s.State))

	var top, bottom, empty []string
	for _, sock := range s.Sockets {
		if sock.Aspect == "" {
			empty = append(empty, sock.ID)
			continue
		}
		if sock.Side == "bottom" {
			bottom = append(bottom, sock.Aspect)
		} else {
			top = append(top, sock.Aspect)
		}
	}
	b.WriteString(fmt.Sprintf("Top sockets: %v\n", top))
	b.WriteString(fmt.Sprintf("Bottom sockets: %v\n", bottom))
	b.WriteString(fmt.Sprintf("Empty sockets: %d\n", len(empty)))

	if s.LastCombined != "" {
		b.WriteString("Most recent discovery: " + s.LastCombined + "\n")
	}
	if s.Ending != "" {
		b.WriteString(fmt.Sprintf("Ending: %s (score %d)\n", s.Ending, s.Score))
	}

	if len(history) > 0 {
		b.WriteString("RECENT EVENTS:\n")
		for _, entry := range history {
			b.WriteString(entry + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
