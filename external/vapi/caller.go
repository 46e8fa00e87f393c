package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/foxseedlab/kaishu/internal/voice"
)

const maxResponseBytes = 1 << 20

type Config struct {
	APIKey        string
	AssistantID   string
	PhoneNumberID string
	BaseURL       string
	Timeout       time.Duration
}

type Caller struct {
	cfg    Config
	client *http.Client
}

func NewCaller(cfg Config) voice.Caller {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Caller{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

type startCallRequest struct {
	AssistantID   string       `json:"assistantId"`
	PhoneNumberID string       `json:"phoneNumberId"`
	Customer      callCustomer `json:"customer"`
}

type callCustomer struct {
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

func (c *Caller) StartCall(ctx context.Context, input voice.StartCallInput) (json.RawMessage, error) {
	if c.cfg.APIKey == "" || c.cfg.AssistantID == "" || c.cfg.PhoneNumberID == "" {
		return nil, voice.ErrNotConfigured
	}
	b, err := json.Marshal(startCallRequest{
		AssistantID:   c.cfg.AssistantID,
		PhoneNumberID: c.cfg.PhoneNumberID,
		Customer:      callCustomer{Number: input.CustomerNumber, Name: input.CustomerName},
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/call/phone", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if !isHTTPSuccessStatus(resp.StatusCode) {
		return nil, fmt.Errorf("vapi returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("vapi returned a non-JSON body")
	}
	return json.RawMessage(body), nil
}

func isHTTPSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
