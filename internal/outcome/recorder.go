package outcome

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/foxseedlab/kaishu/internal/dialogue"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/webhook"
)

// Recorder persists the final classification of a customer interaction.
type Recorder struct {
	customers repository.CustomerRepository
	notifier  webhook.Sender
	now       func() time.Time
}

func NewRecorder(customers repository.CustomerRepository, notifier webhook.Sender) *Recorder {
	return &Recorder{customers: customers, notifier: notifier, now: time.Now}
}

// StatusFor maps an intent to the stored call status. A blank transcript
// means the customer never answered and is recorded as FAILED.
func StatusFor(intent dialogue.Intent, transcript string) repository.CallStatus {
	if strings.TrimSpace(transcript) == "" {
		return repository.CallStatusFailed
	}
	switch intent {
	case dialogue.IntentAgreesToPay:
		return repository.CallStatusSuccessful
	case dialogue.IntentRefusesToPay:
		return repository.CallStatusNeedsFollowUp
	default:
		return repository.CallStatusUnclear
	}
}

// Record stores the status together with the verbatim transcript as notes.
func (r *Recorder) Record(ctx context.Context, customerID int64, transcript string, intent dialogue.Intent) (repository.CallStatus, error) {
	status := StatusFor(intent, transcript)
	err := r.customers.UpdateCallOutcome(ctx, repository.UpdateCallOutcomeInput{
		CustomerID: customerID,
		Status:     status,
		Notes:      transcript,
	})
	if err != nil {
		return "", fmt.Errorf("record call outcome: %w", err)
	}
	slog.Info("call outcome recorded", "customer_id", customerID, "intent", intent, "status", status)

	err = r.notifier.SendOutcome(ctx, webhook.OutcomePayload{
		SchemaVersion: webhook.OutcomeWebhookSchemaVersion,
		CustomerID:    customerID,
		Status:        string(status),
		Intent:        string(intent),
		Notes:         transcript,
		RecordedAt:    r.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		slog.Warn("outcome webhook failed", "customer_id", customerID, "error", err)
	}
	return status, nil
}
