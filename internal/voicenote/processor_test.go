package voicenote

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/foxseedlab/kaishu/internal/dialogue"
	"github.com/foxseedlab/kaishu/internal/outcome"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/webhook"
)

type mockRepository struct {
	customers map[int64]*repository.Customer
	updates   []repository.UpdateCallOutcomeInput
}

func (m *mockRepository) ListCustomers(context.Context) ([]repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) ListPendingCustomers(context.Context) ([]repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) GetCustomerByID(_ context.Context, id int64) (*repository.Customer, error) {
	return m.customers[id], nil
}

func (m *mockRepository) GetCustomerByPhone(context.Context, string) (*repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) CreateCustomer(context.Context, repository.CreateCustomerInput) (*repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) UpdateCallOutcome(_ context.Context, input repository.UpdateCallOutcomeInput) error {
	m.updates = append(m.updates, input)
	return nil
}

type mockStore struct {
	saved    []string
	cleaned  int
	saveErr  error
	lastPath string
}

func (m *mockStore) Save(r io.Reader, filename string) (string, func(), error) {
	if m.saveErr != nil {
		return "", nil, m.saveErr
	}
	b, _ := io.ReadAll(r)
	m.saved = append(m.saved, string(b))
	m.lastPath = "/tmp/" + filename
	return m.lastPath, func() { m.cleaned++ }, nil
}

type mockTranscriber struct {
	text  string
	err   error
	paths []string
}

func (m *mockTranscriber) Transcribe(_ context.Context, path string) (string, error) {
	m.paths = append(m.paths, path)
	return m.text, m.err
}

type mockSMSSender struct {
	sent []string
	err  error
}

func (m *mockSMSSender) Send(_ context.Context, to, body string) error {
	m.sent = append(m.sent, to+"|"+body)
	return m.err
}

type noopWebhook struct{}

func (noopWebhook) SendOutcome(context.Context, webhook.OutcomePayload) error { return nil }

type processorFixture struct {
	processor   *Processor
	repo        *mockRepository
	store       *mockStore
	transcriber *mockTranscriber
	sms         *mockSMSSender
}

func newProcessorFixture(transcript string) *processorFixture {
	f := &processorFixture{
		repo: &mockRepository{customers: map[int64]*repository.Customer{
			1: {ID: 1, Name: "Asha", Phone: "+1555", LoanAmount: 500},
		}},
		store:       &mockStore{},
		transcriber: &mockTranscriber{text: transcript},
		sms:         &mockSMSSender{},
	}
	f.processor = NewProcessor(
		f.repo,
		f.store,
		f.transcriber,
		dialogue.NewKeywordClassifier(),
		dialogue.NoSentiment{},
		dialogue.NewPlanner("https://pay.example.com"),
		outcome.NewRecorder(f.repo, noopWebhook{}),
		f.sms,
	)
	return f
}

func TestProcess_AgreementRecordsAndSendsSMS(t *testing.T) {
	f := newProcessorFixture("yes I will pay tomorrow")

	res, err := f.processor.Process(context.Background(), 1, strings.NewReader("audio"), "note.wav")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if res.Intent != dialogue.IntentAgreesToPay || res.Status != repository.CallStatusSuccessful {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(f.repo.updates) != 1 || f.repo.updates[0].Notes != "yes I will pay tomorrow" {
		t.Fatalf("unexpected updates: %+v", f.repo.updates)
	}
	if len(f.sms.sent) != 1 || !strings.HasPrefix(f.sms.sent[0], "+1555|") {
		t.Fatalf("unexpected sms: %+v", f.sms.sent)
	}
	if len(res.ActionsExecuted) != 1 || !res.ActionsExecuted[0].Sent || res.ActionsExecuted[0].Type != dialogue.ActionSendSMS {
		t.Fatalf("unexpected executed actions: %+v", res.ActionsExecuted)
	}
	if f.transcriber.paths[0] != f.store.lastPath || f.store.cleaned != 1 {
		t.Fatalf("recording should be transcribed from the temp file and removed: paths=%v cleaned=%d", f.transcriber.paths, f.store.cleaned)
	}
}

func TestProcess_RefusalRecordsFollowUpWithoutSMS(t *testing.T) {
	f := newProcessorFixture("I can't pay this month")

	res, err := f.processor.Process(context.Background(), 1, strings.NewReader("audio"), "note.wav")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if res.Status != repository.CallStatusNeedsFollowUp || len(f.sms.sent) != 0 || len(res.ActionsExecuted) != 0 {
		t.Fatalf("unexpected result: %+v sms=%v", res, f.sms.sent)
	}
}

func TestProcess_SMSFailureIsReported(t *testing.T) {
	f := newProcessorFixture("okay")
	f.sms.err = errors.New("twilio down")

	res, err := f.processor.Process(context.Background(), 1, strings.NewReader("audio"), "note.wav")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(res.ActionsExecuted) != 1 || res.ActionsExecuted[0].Sent {
		t.Fatalf("expected unsent sms entry, got %+v", res.ActionsExecuted)
	}
}

func TestProcess_UnknownCustomer(t *testing.T) {
	f := newProcessorFixture("yes")

	_, err := f.processor.Process(context.Background(), 999, strings.NewReader("audio"), "note.wav")
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if len(f.repo.updates) != 0 || len(f.store.saved) != 0 {
		t.Fatal("unknown customer must not write anything")
	}
}

func TestProcess_TranscriptionFailures(t *testing.T) {
	cases := []*mockTranscriber{
		{err: errors.New("speech api down")},
		{text: "[Transcription failed]"},
		{text: "[Google API error] deadline exceeded"},
	}
	for _, tr := range cases {
		f := newProcessorFixture("")
		f.transcriber = tr
		f.processor.transcriber = tr

		_, err := f.processor.Process(context.Background(), 1, strings.NewReader("audio"), "note.wav")
		if !errors.Is(err, ErrTranscriptionFailed) {
			t.Fatalf("text=%q err=%v: expected ErrTranscriptionFailed, got %v", tr.text, tr.err, err)
		}
		if len(f.repo.updates) != 0 {
			t.Fatal("failed transcription must not record an outcome")
		}
		if f.store.cleaned != 1 {
			t.Fatalf("temp recording must be removed, cleaned=%d", f.store.cleaned)
		}
	}
}

func TestProcess_EmptyTranscriptRecordsFailed(t *testing.T) {
	f := newProcessorFixture("")

	res, err := f.processor.Process(context.Background(), 1, strings.NewReader("audio"), "note.wav")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if res.Status != repository.CallStatusFailed || f.repo.updates[0].Notes != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestProcess_SaveFailure(t *testing.T) {
	f := newProcessorFixture("yes")
	f.store.saveErr = errors.New("disk full")

	if _, err := f.processor.Process(context.Background(), 1, strings.NewReader("audio"), "note.wav"); err == nil {
		t.Fatal("expected error when recording cannot be saved")
	}
	if len(f.transcriber.paths) != 0 {
		t.Fatal("transcriber must not run without a saved recording")
	}
}
