package session

import (
	"fmt"
	"strings"
)

func formatTurn(t Turn) string {
	return fmt.Sprintf("%s: %s", t.Speaker, t.Text)
}

// TranscriptLines renders turns as "User: ..." / "Agent: ..." lines.
func TranscriptLines(turns []Turn) []string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, formatTurn(t))
	}
	return lines
}

func TranscriptText(turns []Turn) string {
	return strings.Join(TranscriptLines(turns), "\n")
}
