package voicenote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/foxseedlab/kaishu/internal/audio"
	"github.com/foxseedlab/kaishu/internal/dialogue"
	"github.com/foxseedlab/kaishu/internal/outcome"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/sms"
	"github.com/foxseedlab/kaishu/internal/transcriber"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrTranscriptionFailed = errors.New("transcription failed")
)

type ExecutedAction struct {
	Type    dialogue.ActionKind `json:"type"`
	Message string              `json:"message"`
	Sent    bool                `json:"sent"`
}

type Result struct {
	CustomerID      int64
	Transcript      string
	Intent          dialogue.Intent
	Status          repository.CallStatus
	Plan            dialogue.Plan
	ActionsExecuted []ExecutedAction
}

// Processor handles a recorded voice note for one customer: the note is
// transcribed, classified without history, recorded, and any payment
// link SMS in the plan is sent.
type Processor struct {
	customers   repository.CustomerRepository
	recordings  audio.RecordingStore
	transcriber transcriber.Transcriber
	classifier  dialogue.Classifier
	sentiment   dialogue.SentimentAnalyzer
	planner     *dialogue.Planner
	recorder    *outcome.Recorder
	sms         sms.Sender
}

func NewProcessor(
	customers repository.CustomerRepository,
	recordings audio.RecordingStore,
	stt transcriber.Transcriber,
	classifier dialogue.Classifier,
	sentiment dialogue.SentimentAnalyzer,
	planner *dialogue.Planner,
	recorder *outcome.Recorder,
	smsSender sms.Sender,
) *Processor {
	return &Processor{
		customers:   customers,
		recordings:  recordings,
		transcriber: stt,
		classifier:  classifier,
		sentiment:   sentiment,
		planner:     planner,
		recorder:    recorder,
		sms:         smsSender,
	}
}

func (p *Processor) Process(ctx context.Context, customerID int64, recording io.Reader, filename string) (*Result, error) {
	customer, err := p.customers.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	path, cleanup, err := p.recordings.Save(recording, filename)
	if err != nil {
		return nil, fmt.Errorf("save recording: %w", err)
	}
	defer cleanup()

	transcript, err := p.transcriber.Transcribe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	if transcriber.IsFailureText(transcript) {
		return nil, fmt.Errorf("%w: %s", ErrTranscriptionFailed, transcript)
	}

	intent := p.classifier.Classify(ctx, dialogue.ClassifyInput{
		Transcript: transcript,
		Sentiment:  p.sentiment.Analyze(ctx, transcript),
	})
	plan := p.planner.Plan(intent, customer)

	status, err := p.recorder.Record(ctx, customer.ID, transcript, intent)
	if err != nil {
		return nil, err
	}

	executed := make([]ExecutedAction, 0, 1)
	for _, a := range plan.SMSActions() {
		sent := true
		if err := p.sms.Send(ctx, customer.Phone, a.Message); err != nil {
			slog.Error("voice note sms failed", "customer_id", customer.ID, "error", err)
			sent = false
		}
		executed = append(executed, ExecutedAction{Type: a.Kind(), Message: a.Message, Sent: sent})
	}

	slog.Info("voice note processed", "customer_id", customer.ID, "intent", intent, "status", status, "sms", len(executed))
	return &Result{
		CustomerID:      customer.ID,
		Transcript:      transcript,
		Intent:          intent,
		Status:          status,
		Plan:            plan,
		ActionsExecuted: executed,
	}, nil
}
