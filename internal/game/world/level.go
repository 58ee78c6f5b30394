package world

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"aspects/internal/game/aspect"
)

//go:embed levels/garden.yaml
var gardenLevel []byte

const (
	tileWall  = '#'
	tileFloor = '.'
)

// Level is the authored layout a session starts from.
type Level struct {
	Name     string       `yaml:"name"`
	Tiles    []string     `yaml:"tiles"`
	Player   Position     `yaml:"player"`
	Combiner Position     `yaml:"combiner"`
	Sockets  []SocketSpec `yaml:"sockets"`
}

// SocketSpec places one socket. An omitted aspect leaves the socket empty.
type SocketSpec struct {
	ID     string        `yaml:"id"`
	X      int           `yaml:"x"`
	Y      int           `yaml:"y"`
	Side   Side          `yaml:"side"`
	Aspect aspect.Aspect `yaml:"aspect"`
}

// DefaultLevel returns the level embedded in the binary.
func DefaultLevel() (*Level, error) {
	return ParseLevel(bytes.NewReader(gardenLevel))
}

// LoadLevel reads a level file from disk.
func LoadLevel(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level %s: %w", path, err)
	}
	defer f.Close()

	level, err := ParseLevel(f)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return level, nil
}

// ParseLevel decodes and validates a YAML level.
func ParseLevel(r io.Reader) (*Level, error) {
	var level Level
	if err := yaml.NewDecoder(r).Decode(&level); err != nil {
		return nil, fmt.Errorf("failed to decode level: %w", err)
	}
	for i := range level.Sockets {
		if level.Sockets[i].ID == "" {
			level.Sockets[i].ID = fmt.Sprintf("socket-%d", i+1)
		}
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	return &level, nil
}

func (l *Level) Width() int {
	w := 0
	for _, row := range l.Tiles {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

func (l *Level) Height() int {
	return len(l.Tiles)
}

// Floor reports whether p lies on a floor tile inside the map.
func (l *Level) Floor(p Position) bool {
	if p.Y < 0 || p.Y >= len(l.Tiles) {
		return false
	}
	row := l.Tiles[p.Y]
	if p.X < 0 || p.X >= len(row) {
		return false
	}
	return row[p.X] == tileFloor
}

// Validate checks the level can be played.
func (l *Level) Validate() error {
	if len(l.Tiles) == 0 {
		return fmt.Errorf("level %q has no tiles", l.Name)
	}
	for y, row := range l.Tiles {
		for x, c := range row {
			if c != tileWall && c != tileFloor {
				return fmt.Errorf("level %q: unknown tile %q at %d,%d", l.Name, c, x, y)
			}
		}
	}

	occupied := make(map[Position]string)
	place := func(what string, p Position) error {
		if !l.Floor(p) {
			return fmt.Errorf("level %q: %s at %d,%d is not on a floor tile", l.Name, what, p.X, p.Y)
		}
		if other, taken := occupied[p]; taken {
			return fmt.Errorf("level %q: %s at %d,%d overlaps %s", l.Name, what, p.X, p.Y, other)
		}
		occupied[p] = what
		return nil
	}

	if err := place("combiner", l.Combiner); err != nil {
		return err
	}
	if err := place("player", l.Player); err != nil {
		return err
	}

	ids := make(map[string]bool)
	perSide := map[Side]int{}
	for _, s := range l.Sockets {
		if ids[s.ID] {
			return fmt.Errorf("level %q: duplicate socket id %q", l.Name, s.ID)
		}
		ids[s.ID] = true
		if err := place("socket "+s.ID, Position{X: s.X, Y: s.Y}); err != nil {
			return err
		}
		perSide[s.Side]++
	}
	if perSide[Top] == 0 || perSide[Bottom] == 0 {
		return fmt.Errorf("level %q needs at least one socket per side", l.Name)
	}
	return nil
}
