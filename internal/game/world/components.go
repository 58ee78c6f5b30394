package world

import (
	"fmt"
	"strings"

	"github.com/yohamta/donburi"

	"aspects/internal/game/aspect"
)

// Side is the combiner half a socket feeds.
type Side int

const (
	Top Side = iota
	Bottom
)

func (s Side) String() string {
	if s == Bottom {
		return "bottom"
	}
	return "top"
}

// ParseSide accepts top/bottom and the older left/right naming.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "left":
		return Top, nil
	case "bottom", "right":
		return Bottom, nil
	}
	return Top, fmt.Errorf("unknown socket side %q", s)
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Position is a tile coordinate. X grows to the right, Y grows downwards.
type Position struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Socket holds one aspect and feeds one side of the combiner.
type Socket struct {
	ID     string
	Aspect aspect.Aspect
	Side   Side
}

// Empty reports whether the socket still waits for a discovered aspect.
func (s Socket) Empty() bool {
	return s.Aspect.IsZero()
}

var (
	SocketComponent   = donburi.NewComponentType[Socket]()
	PositionComponent = donburi.NewComponentType[Position]()
	CombinerTag       = donburi.NewComponentType[struct{}]()
	PlayerTag         = donburi.NewComponentType[struct{}]()
)
