package outcome

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foxseedlab/kaishu/internal/dialogue"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/webhook"
)

type mockRepository struct {
	updates   []repository.UpdateCallOutcomeInput
	updateErr error
}

func (m *mockRepository) ListCustomers(context.Context) ([]repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) ListPendingCustomers(context.Context) ([]repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) GetCustomerByID(context.Context, int64) (*repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) GetCustomerByPhone(context.Context, string) (*repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) CreateCustomer(context.Context, repository.CreateCustomerInput) (*repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) UpdateCallOutcome(_ context.Context, input repository.UpdateCallOutcomeInput) error {
	m.updates = append(m.updates, input)
	return m.updateErr
}

type mockSender struct {
	payloads []webhook.OutcomePayload
	err      error
}

func (m *mockSender) SendOutcome(_ context.Context, payload webhook.OutcomePayload) error {
	m.payloads = append(m.payloads, payload)
	return m.err
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		intent     dialogue.Intent
		transcript string
		want       repository.CallStatus
	}{
		{dialogue.IntentAgreesToPay, "yes", repository.CallStatusSuccessful},
		{dialogue.IntentRefusesToPay, "no", repository.CallStatusNeedsFollowUp},
		{dialogue.IntentUnclear, "hmm", repository.CallStatusUnclear},
		{dialogue.IntentRequestsInfo, "how much?", repository.CallStatusUnclear},
		{dialogue.IntentEndConversation, "bye", repository.CallStatusUnclear},
		{dialogue.IntentUnclear, "  ", repository.CallStatusFailed},
		{dialogue.IntentAgreesToPay, "", repository.CallStatusFailed},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.intent, tc.transcript); got != tc.want {
			t.Fatalf("%s/%q: expected %s, got %s", tc.intent, tc.transcript, tc.want, got)
		}
	}
}

func TestRecord_PersistsVerbatimNotes(t *testing.T) {
	repo := &mockRepository{}
	sender := &mockSender{}
	r := NewRecorder(repo, sender)
	r.now = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }

	transcript := "  Umm... I REFUSE.  "
	status, err := r.Record(context.Background(), 3, transcript, dialogue.IntentRefusesToPay)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if status != repository.CallStatusNeedsFollowUp {
		t.Fatalf("unexpected status: %s", status)
	}
	if len(repo.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(repo.updates))
	}
	if got := repo.updates[0]; got.CustomerID != 3 || got.Notes != transcript || got.Status != status {
		t.Fatalf("unexpected update: %+v", got)
	}
	if len(sender.payloads) != 1 {
		t.Fatalf("expected one notification, got %d", len(sender.payloads))
	}
	p := sender.payloads[0]
	if p.Status != "NEEDS FOLLOW-UP" || p.Intent != "REFUSES_TO_PAY" || p.RecordedAt != "2026-10-19T09:30:00Z" {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func TestRecord_RepositoryErrorIsReturned(t *testing.T) {
	repo := &mockRepository{updateErr: repository.ErrCustomerNotFound}
	sender := &mockSender{}

	_, err := NewRecorder(repo, sender).Record(context.Background(), 99, "yes", dialogue.IntentAgreesToPay)
	if !errors.Is(err, repository.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if len(sender.payloads) != 0 {
		t.Fatal("failed writes must not be announced")
	}
}

func TestRecord_NotificationFailureIsNotFatal(t *testing.T) {
	repo := &mockRepository{}
	sender := &mockSender{err: errors.New("listener down")}

	status, err := NewRecorder(repo, sender).Record(context.Background(), 1, "", dialogue.IntentUnclear)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if status != repository.CallStatusFailed {
		t.Fatalf("unexpected status: %s", status)
	}
}
