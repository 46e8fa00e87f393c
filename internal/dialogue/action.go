package dialogue

import (
	"encoding/json"
	"fmt"
)

type ActionKind string

const (
	ActionReply   ActionKind = "REPLY"
	ActionSendSMS ActionKind = "SEND_SMS"
	ActionEndCall ActionKind = "END_CALL"
)

// Action is one of Reply, SendSMS or EndCall.
type Action interface {
	Kind() ActionKind
	sealed()
}

type Reply struct{ Text string }

type SendSMS struct{ Message string }

type EndCall struct{ Text string }

func (Reply) Kind() ActionKind   { return ActionReply }
func (SendSMS) Kind() ActionKind { return ActionSendSMS }
func (EndCall) Kind() ActionKind { return ActionEndCall }

func (Reply) sealed()   {}
func (SendSMS) sealed() {}
func (EndCall) sealed() {}

// Plan is the next step of a conversation. A non-sequence plan holds
// exactly one Reply or EndCall.
type Plan struct {
	Intent   Intent
	Actions  []Action
	Sequence bool
}

// SMSActions returns the SendSMS actions in execution order, stopping at EndCall.
func (p Plan) SMSActions() []SendSMS {
	var out []SendSMS
	for _, a := range p.Actions {
		switch a := a.(type) {
		case SendSMS:
			out = append(out, a)
		case EndCall:
			return out
		}
	}
	return out
}

const actionSequence = "SEQUENCE"

type planJSON struct {
	Action  string `json:"action"`
	Payload any    `json:"payload"`
	Intent  Intent `json:"intent"`
}

type actionJSON struct {
	Type    ActionKind `json:"type,omitempty"`
	Text    string     `json:"text,omitempty"`
	Message string     `json:"message,omitempty"`
}

func (p Plan) MarshalJSON() ([]byte, error) {
	if p.Sequence {
		items := make([]actionJSON, 0, len(p.Actions))
		for _, a := range p.Actions {
			item := encodeAction(a)
			item.Type = a.Kind()
			items = append(items, item)
		}
		return json.Marshal(planJSON{Action: actionSequence, Payload: items, Intent: p.Intent})
	}
	if len(p.Actions) != 1 {
		return nil, fmt.Errorf("single-action plan has %d actions", len(p.Actions))
	}
	return json.Marshal(planJSON{
		Action:  string(p.Actions[0].Kind()),
		Payload: encodeAction(p.Actions[0]),
		Intent:  p.Intent,
	})
}

func encodeAction(a Action) actionJSON {
	switch a := a.(type) {
	case Reply:
		return actionJSON{Text: a.Text}
	case SendSMS:
		return actionJSON{Message: a.Message}
	case EndCall:
		return actionJSON{Text: a.Text}
	default:
		return actionJSON{}
	}
}
