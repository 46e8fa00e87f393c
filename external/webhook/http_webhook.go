package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/foxseedlab/kaishu/internal/webhook"
)

const (
	schemaVersionHeader = "X-Outcome-Schema-Version"
	maxErrorBodyBytes   = 512
)

// OutcomeSender posts each recorded call outcome to a single listener URL.
type OutcomeSender struct {
	url    string
	client *http.Client
}

// NewHTTPSender returns a sender that does nothing when url is empty.
func NewHTTPSender(url string, timeout time.Duration) webhook.Sender {
	return &OutcomeSender{
		url:    strings.TrimSpace(url),
		client: &http.Client{Timeout: timeout},
	}
}

func (s *OutcomeSender) SendOutcome(ctx context.Context, payload webhook.OutcomePayload) error {
	if s.url == "" {
		return nil
	}
	if payload.SchemaVersion == "" {
		payload.SchemaVersion = webhook.OutcomeWebhookSchemaVersion
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode outcome for customer %d: %w", payload.CustomerID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(schemaVersionHeader, payload.SchemaVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post outcome for customer %d: %w", payload.CustomerID, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("outcome listener returned status %d for customer %d: %s",
			resp.StatusCode, payload.CustomerID, strings.TrimSpace(string(msg)))
	}
	slog.Debug("outcome delivered", "customer_id", payload.CustomerID, "status", payload.Status, "http_status", resp.StatusCode)
	return nil
}
