package narration

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"aspects/internal/game/ending"
)

//go:embed scripts/garden.yaml
var gardenScript []byte

// Script maps each dialogue node to the lines shown for it.
type Script map[ending.Dialogue][]string

func DefaultScript() (Script, error) {
	return ParseScript(bytes.NewReader(gardenScript))
}

func LoadScript(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script %s: %w", path, err)
	}
	defer f.Close()

	script, err := ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return script, nil
}

func ParseScript(r io.Reader) (Script, error) {
	var script Script
	if err := yaml.NewDecoder(r).Decode(&script); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return script, nil
}

// Validate reports every node the game can reach that has no lines.
func (s Script) Validate() error {
	var missing []string
	for _, node := range ending.Nodes() {
		if len(s[node]) == 0 {
			missing = append(missing, string(node))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("script has no lines for %v", missing)
	}
	return nil
}

func (s Script) Lines(node ending.Dialogue) ([]string, bool) {
	lines, ok := s[node]
	if !ok {
		return nil, false
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out, true
}
