package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/foxseedlab/kaishu/internal/dialogue"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/sms"
	"github.com/foxseedlab/kaishu/internal/voice"
)

// Dispatcher drives the per-call conversation from voice platform events.
// A session exists from the first resolved user transcript until call-end.
type Dispatcher struct {
	store      Store
	customers  repository.CustomerRepository
	classifier dialogue.Classifier
	planner    *dialogue.Planner
	sms        sms.Sender
}

func NewDispatcher(
	store Store,
	customers repository.CustomerRepository,
	classifier dialogue.Classifier,
	planner *dialogue.Planner,
	smsSender sms.Sender,
) *Dispatcher {
	return &Dispatcher{
		store:      store,
		customers:  customers,
		classifier: classifier,
		planner:    planner,
		sms:        smsSender,
	}
}

func (d *Dispatcher) HandleEvent(ctx context.Context, ev voice.Event) voice.Response {
	switch ev.Message.Type {
	case voice.EventTypeTranscript:
		if ev.Message.Role != voice.RoleUser {
			return voice.Response{}
		}
		return d.handleTranscript(ctx, ev)
	case voice.EventTypeCallEnd:
		d.handleCallEnd(ev.Call.ID)
		return voice.Response{}
	default:
		slog.Debug("ignoring voice event", "type", ev.Message.Type, "call_id", ev.Call.ID)
		return voice.Response{}
	}
}

func (d *Dispatcher) handleTranscript(ctx context.Context, ev voice.Event) voice.Response {
	callID := ev.Call.ID
	if callID == "" {
		slog.Warn("transcript event without call id")
		return voice.Response{}
	}

	number := strings.TrimSpace(ev.Call.Customer.Number)
	customer, err := d.lookupCaller(ctx, number)
	if err != nil {
		slog.Error("caller lookup failed", "call_id", callID, "error", err)
	}
	if customer == nil {
		slog.Info("caller not found", "call_id", callID, "phone", number)
		return voice.Response{Reply: messageUnknownCaller}
	}

	transcript := ev.Message.Transcript
	history := TranscriptLines(d.store.Get(callID))
	d.store.Append(callID, Turn{Speaker: SpeakerUser, Text: transcript})

	// no sentiment pass here: a live turn is held to one completion
	intent := d.classifier.Classify(ctx, dialogue.ClassifyInput{
		Transcript: transcript,
		History:    history,
	})
	plan := d.planner.Plan(intent, customer)
	slog.Info("dialogue turn planned", "call_id", callID, "customer_id", customer.ID, "intent", intent, "actions", len(plan.Actions))

	return d.execute(ctx, callID, customer, plan)
}

// execute runs actions in order and stops at the first EndCall. A reply
// spoken before EndCall stays in the response alongside the end signal.
func (d *Dispatcher) execute(ctx context.Context, callID string, customer *repository.Customer, plan dialogue.Plan) voice.Response {
	var resp voice.Response
	for _, action := range plan.Actions {
		switch a := action.(type) {
		case dialogue.Reply:
			resp.Reply = a.Text
			d.store.Append(callID, Turn{Speaker: SpeakerAgent, Text: a.Text})
		case dialogue.SendSMS:
			if err := d.sms.Send(ctx, customer.Phone, a.Message); err != nil {
				slog.Error("payment link sms failed", "call_id", callID, "customer_id", customer.ID, "error", err)
			}
		case dialogue.EndCall:
			resp.EndCall = true
			resp.EndCallMessage = a.Text
			d.store.Append(callID, Turn{Speaker: SpeakerAgent, Text: a.Text})
			return resp
		}
	}
	return resp
}

func (d *Dispatcher) handleCallEnd(callID string) {
	if callID == "" {
		return
	}
	if d.store.Exists(callID) {
		slog.Info("conversation cleared", "call_id", callID)
	}
	d.store.Clear(callID)
}

func (d *Dispatcher) lookupCaller(ctx context.Context, number string) (*repository.Customer, error) {
	if number == "" {
		return nil, nil
	}
	return d.customers.GetCustomerByPhone(ctx, number)
}
