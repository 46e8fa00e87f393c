package voice

const (
	EventTypeTranscript = "transcript"
	EventTypeCallEnd    = "call-end"

	RoleUser = "user"
)

// Event is the webhook body posted by the voice platform. Absent keys
// decode to zero values.
type Event struct {
	Message EventMessage `json:"message"`
	Call    EventCall    `json:"call"`
}

type EventMessage struct {
	Type       string `json:"type"`
	Role       string `json:"role"`
	Transcript string `json:"transcript"`
}

type EventCall struct {
	ID       string        `json:"id"`
	Customer EventCustomer `json:"customer"`
}

type EventCustomer struct {
	Number string `json:"number"`
}

// Response is the webhook reply. The zero value encodes as {}.
type Response struct {
	Reply          string `json:"reply,omitempty"`
	EndCall        bool   `json:"endCall,omitempty"`
	EndCallMessage string `json:"endCallMessage,omitempty"`
}
