package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/foxseedlab/kaishu/internal/outbound"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/voice"
	"github.com/foxseedlab/kaishu/internal/voicenote"
)

const (
	maxWebhookBodyBytes = 1 << 20
	maxUploadBytes      = 25 << 20
	maxCustomerBodySize = 64 << 10
)

type EventHandler interface {
	HandleEvent(ctx context.Context, ev voice.Event) voice.Response
}

type CallStarter interface {
	StartCall(ctx context.Context, customerID int64) (*outbound.Result, error)
}

type VoiceNoteProcessor interface {
	Process(ctx context.Context, customerID int64, recording io.Reader, filename string) (*voicenote.Result, error)
}

type Server struct {
	customers   repository.CustomerRepository
	events      EventHandler
	calls       CallStarter
	voiceNotes  VoiceNoteProcessor
	corsOrigins []string
}

func NewServer(customers repository.CustomerRepository, events EventHandler, calls CallStarter, voiceNotes VoiceNoteProcessor, corsOrigins []string) *Server {
	return &Server{
		customers:   customers,
		events:      events,
		calls:       calls,
		voiceNotes:  voiceNotes,
		corsOrigins: corsOrigins,
	}
}

// Handler returns the routed API wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /all-customers", s.handleAllCustomers)
	mux.HandleFunc("GET /pending-customers", s.handlePendingCustomers)
	mux.HandleFunc("POST /add-customer", s.handleAddCustomer)
	mux.HandleFunc("POST /start-call/{customer_id}", s.handleStartCall)
	mux.Handle("POST /webhook/vapi", recoverJSON(http.HandlerFunc(s.handleVoiceWebhook), emptyObject))
	mux.HandleFunc("POST /upload-recording/{customer_id}", s.handleUploadRecording)
	return withMiddleware(mux, s.corsOrigins)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
