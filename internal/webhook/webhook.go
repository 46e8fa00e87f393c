package webhook

import "context"

const OutcomeWebhookSchemaVersion = "2026-10-01"

type OutcomePayload struct {
	SchemaVersion string `json:"schema_version"`
	CustomerID    int64  `json:"customer_id"`
	Status        string `json:"status"`
	Intent        string `json:"intent"`
	Notes         string `json:"notes"`
	RecordedAt    string `json:"recorded_at"`
}

// Sender posts recorded outcomes to an external listener. Implementations
// without a destination return nil.
type Sender interface {
	SendOutcome(ctx context.Context, payload OutcomePayload) error
}
