package llm

import (
	"context"
	"errors"
)

var ErrEmptyCompletion = errors.New("llm returned no choices")

type CompletionRequest struct {
	Model       string
	Prompt      string
	Temperature float64
}

// Completer runs a single-prompt chat completion and returns the first choice's text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
