package dialogue

import "github.com/foxseedlab/kaishu/internal/repository"

type Planner struct {
	paymentLink string
}

func NewPlanner(paymentLink string) *Planner {
	return &Planner{paymentLink: paymentLink}
}

// Plan maps an intent to the next actions. Agreement yields
// Reply, SendSMS, EndCall in that order so the SMS is dispatched before
// the call can be torn down. RequestsInfo and EndConversation share the
// ask-to-repeat reply with Unclear.
func (p *Planner) Plan(intent Intent, customer *repository.Customer) Plan {
	switch intent {
	case IntentAgreesToPay:
		return Plan{
			Intent:   intent,
			Sequence: true,
			Actions: []Action{
				Reply{Text: agreeReply(customer)},
				SendSMS{Message: paymentSMS(customer, p.paymentLink)},
				EndCall{Text: messageAgreeClose},
			},
		}
	case IntentRefusesToPay:
		return Plan{Intent: intent, Actions: []Action{EndCall{Text: refuseClose(customer)}}}
	default:
		return Plan{Intent: intent, Actions: []Action{Reply{Text: messageAskToRepeat}}}
	}
}
