package aspect

import (
	"fmt"
	"strings"
)

// Aspect is an emotion the player discovers and combines.
// The zero value, NotImplemented, means "no aspect".
type Aspect int

const (
	NotImplemented Aspect = iota
	Joy
	Sadness
	Anger
	Fear
	Nostalgia
	Motivation
	Melancholy
	Hatred
	Vengefulness
	Elation
	Anticipation
	Envy
	Pride
	Forgiveness
)

var names = [...]string{
	NotImplemented: "NotImplemented",
	Joy:            "Joy",
	Sadness:        "Sadness",
	Anger:          "Anger",
	Fear:           "Fear",
	Nostalgia:      "Nostalgia",
	Motivation:     "Motivation",
	Melancholy:     "Melancholy",
	Hatred:         "Hatred",
	Vengefulness:   "Vengefulness",
	Elation:        "Elation",
	Anticipation:   "Anticipation",
	Envy:           "Envy",
	Pride:          "Pride",
	Forgiveness:    "Forgiveness",
}

func (a Aspect) String() string {
	if a < 0 || int(a) >= len(names) {
		return fmt.Sprintf("Aspect(%d)", int(a))
	}
	return names[a]
}

// IsZero reports whether a holds no aspect.
func (a Aspect) IsZero() bool {
	return a == NotImplemented
}

// Valid reports whether a is one of the known, non-empty aspects.
func (a Aspect) Valid() bool {
	return a > NotImplemented && int(a) < len(names)
}

// All returns every non-empty aspect in declaration order.
func All() []Aspect {
	out := make([]Aspect, 0, len(names)-1)
	for a := Joy; int(a) < len(names); a++ {
		out = append(out, a)
	}
	return out
}

// Parse resolves a case-insensitive aspect name. An empty string and
// "NotImplemented" both parse to the zero value.
func Parse(name string) (Aspect, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return NotImplemented, nil
	}
	for i, n := range names {
		if strings.EqualFold(n, trimmed) {
			return Aspect(i), nil
		}
	}
	return NotImplemented, fmt.Errorf("unknown aspect %q", name)
}

// MarshalText implements encoding.TextMarshaler so aspects travel as names
// in YAML, JSON and MCP payloads.
func (a Aspect) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(names) {
		return nil, fmt.Errorf("invalid aspect %d", int(a))
	}
	return []byte(names[a]), nil
}

func (a *Aspect) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
