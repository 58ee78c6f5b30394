package narration

import (
	"fmt"
	"strings"

	"aspects/internal/game/ending"
)

func buildNarrationPrompt(node ending.Dialogue, lines []string) string {
	speaker := "the narrator"
	if strings.HasPrefix(strings.Join(lines, ""), "Ima:") {
		speaker = "Ima, a gentle companion who lives in the garden"
	}

	var script strings.Builder
	for _, l := range lines {
		script.WriteString("- " + l + "\n")
	}

	return fmt.Sprintf(`You voice %s in a quiet game about a garden of feelings.

The scene "%s" is about to play. Its written lines are:
%s
Rewrite these lines so they respond to the current garden, using the state below.

Rules:
- Keep the same meaning, speaker and order. Do not add new events.
- Keep any "Ima:" prefix on lines spoken by Ima.
- Use present tense. Keep each line under 25 words.
- Return between 1 and %d lines.`, speaker, node, script.String(), len(lines)+1)
}
