package voice

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrNotConfigured = errors.New("voice platform is not configured")

type StartCallInput struct {
	CustomerNumber string
	CustomerName   string
}

// Caller places an outbound call and returns the platform's call record verbatim.
type Caller interface {
	StartCall(ctx context.Context, input StartCallInput) (json.RawMessage, error)
}
