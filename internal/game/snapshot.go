package game

import (
	"aspects/internal/game/aspect"
	"aspects/internal/game/world"
)

// SocketState is a socket as seen from outside the session.
type SocketState struct {
	ID     string `json:"id"`
	Side   string `json:"side"`
	Aspect string `json:"aspect,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// Snapshot is a read-only copy of the session state. Aspects are rendered
// by name so the value serialises the same way everywhere.
type Snapshot struct {
	Session      string          `json:"session"`
	Frame        uint64          `json:"frame"`
	State        string          `json:"state"`
	Level        string          `json:"level"`
	Tiles        []string        `json:"tiles,omitempty"`
	Player       world.Position  `json:"player"`
	Combiner     world.Position  `json:"combiner"`
	Sockets      []SocketState   `json:"sockets"`
	Left         string          `json:"left,omitempty"`
	Right        string          `json:"right,omitempty"`
	Preview      string          `json:"preview,omitempty"`
	Blocked      string          `json:"blocked,omitempty"`
	LastCombined string          `json:"last_combined,omitempty"`
	Target       string          `json:"target"`
	AllFull      bool            `json:"all_full"`
	Ending       string          `json:"ending,omitempty"`
	Score        int             `json:"score"`
	Dialogue     string          `json:"dialogue,omitempty"`
	Ima          *world.Position `json:"ima,omitempty"`
}

// Socket finds a socket by id.
func (s Snapshot) Socket(id string) (SocketState, bool) {
	for _, sock := range s.Sockets {
		if sock.ID == id {
			return sock, true
		}
	}
	return SocketState{}, false
}

// EmptySockets counts sockets still waiting for an aspect.
func (s Snapshot) EmptySockets() int {
	n := 0
	for _, sock := range s.Sockets {
		if sock.Aspect == "" {
			n++
		}
	}
	return n
}

func name(a aspect.Aspect) string {
	if a.IsZero() {
		return ""
	}
	return a.String()
}
