package transcriber

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// ErrNotConfigured is returned when the speech backend has no credentials.
var ErrNotConfigured = errors.New("transcriber is not configured")

// Transcriber turns a recorded audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

var failureMarkerPattern = regexp.MustCompile(`(?i)\[[^\]]*(failed|error)[^\]]*\]`)

// IsFailureText reports whether a transcript is a bracketed failure
// marker such as "[Transcription failed]" rather than speech.
func IsFailureText(text string) bool {
	return failureMarkerPattern.MatchString(strings.TrimSpace(text))
}
