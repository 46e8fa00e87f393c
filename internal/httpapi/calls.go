package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/foxseedlab/kaishu/internal/audio"
	"github.com/foxseedlab/kaishu/internal/outbound"
	"github.com/foxseedlab/kaishu/internal/voice"
	"github.com/foxseedlab/kaishu/internal/voicenote"
)

type startCallResponse struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	CallData json.RawMessage `json:"call_data"`
}

type uploadRecordingResponse struct {
	Status           string                     `json:"status"`
	CustomerID       int64                      `json:"customerId"`
	Transcript       string                     `json:"transcript"`
	DeterminedIntent string                     `json:"determinedIntent"`
	FinalDBStatus    string                     `json:"finalDbStatus"`
	ActionPlan       any                        `json:"actionPlan"`
	ActionsExecuted  []voicenote.ExecutedAction `json:"actionsExecuted"`
}

func (s *Server) handleStartCall(w http.ResponseWriter, r *http.Request) {
	id, ok := pathCustomerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "customer_id must be a positive integer")
		return
	}
	res, err := s.calls.StartCall(r.Context(), id)
	switch {
	case errors.Is(err, outbound.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "Customer not found.")
		return
	case errors.Is(err, outbound.ErrPhoneRejected):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("start call failed", "customer_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, startCallResponse{
		Status:   "success",
		Message:  fmt.Sprintf("Call initiated to %s", res.Customer.Name),
		CallData: res.CallData,
	})
}

// handleVoiceWebhook always answers 200 with a JSON object so a live call
// never receives a malformed reply.
func (s *Server) handleVoiceWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		slog.Warn("failed to read voice webhook body", "error", err)
		writeJSON(w, http.StatusOK, emptyObject)
		return
	}
	var ev voice.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		slog.Warn("malformed voice webhook body", "error", err)
		writeJSON(w, http.StatusOK, emptyObject)
		return
	}
	writeJSON(w, http.StatusOK, s.events.HandleEvent(r.Context(), ev))
}

func (s *Server) handleUploadRecording(w http.ResponseWriter, r *http.Request) {
	id, ok := pathCustomerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "customer_id must be a positive integer")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer func() {
		_ = file.Close()
	}()
	if r.MultipartForm != nil {
		defer func() {
			_ = r.MultipartForm.RemoveAll()
		}()
	}

	res, err := s.voiceNotes.Process(r.Context(), id, file, header.Filename)
	switch {
	case errors.Is(err, voicenote.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "Customer not found.")
		return
	case errors.Is(err, audio.ErrEmptyRecording):
		writeError(w, http.StatusBadRequest, "uploaded recording is empty")
		return
	case err != nil:
		slog.Error("voice note processing failed", "customer_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, uploadRecordingResponse{
		Status:           "success",
		CustomerID:       res.CustomerID,
		Transcript:       res.Transcript,
		DeterminedIntent: string(res.Intent),
		FinalDBStatus:    string(res.Status),
		ActionPlan:       res.Plan,
		ActionsExecuted:  res.ActionsExecuted,
	})
}
