package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	ClassifierKeyword = "keyword"
	ClassifierLLM     = "llm"

	TranscriberWhisper = "whisper"
	TranscriberGoogle  = "google"
)

type Config struct {
	Env                string
	HTTPAddr           string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	CORSAllowedOrigins []string
	DatabaseURL        string

	Classifier        string
	SentimentEnabled  bool
	LLMBaseURL        string
	LLMAPIKey         string
	LLMModel          string
	LLMSentimentModel string
	LLMTimeout        time.Duration

	Transcriber                string
	WhisperModel               string
	TranscribeTimeout          time.Duration
	TranscribeLanguage         string
	GoogleCloudProjectID       string
	GoogleCloudCredentialsJSON string
	GoogleCloudSpeechLocation  string
	GoogleCloudSpeechModel     string

	TwilioAccountSID    string
	TwilioAuthToken     string
	TwilioPhoneNumber   string
	TwilioBaseURL       string
	TwilioLookupBaseURL string
	PhoneLookupEnabled  bool
	VapiAPIKey          string
	VapiAssistantID     string
	VapiPhoneNumberID   string
	VapiBaseURL         string
	VendorTimeout       time.Duration
	PaymentLinkURL      string
	OutcomeWebhookURL   string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	switch c.Classifier {
	case ClassifierKeyword, ClassifierLLM:
	default:
		return fmt.Errorf("CLASSIFIER must be %q or %q, got %q", ClassifierKeyword, ClassifierLLM, c.Classifier)
	}
	switch c.Transcriber {
	case TranscriberWhisper, TranscriberGoogle:
	default:
		return fmt.Errorf("TRANSCRIBER must be %q or %q, got %q", TranscriberWhisper, TranscriberGoogle, c.Transcriber)
	}
	if c.needsLLM() && strings.TrimSpace(c.LLMAPIKey) == "" {
		return fmt.Errorf("LLM_API_KEY is required when CLASSIFIER=llm or SENTIMENT_ENABLED=true")
	}
	if c.Transcriber == TranscriberGoogle {
		if c.GoogleCloudProjectID == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT_ID is required when TRANSCRIBER=google")
		}
		if c.GoogleCloudCredentialsJSON == "" {
			return fmt.Errorf("GOOGLE_CLOUD_CREDENTIALS_JSON is required when TRANSCRIBER=google")
		}
	}
	for _, d := range c.positiveDurationChecks() {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.value)
		}
	}
	if c.OutcomeWebhookURL != "" {
		if _, err := url.ParseRequestURI(c.OutcomeWebhookURL); err != nil {
			return fmt.Errorf("OUTCOME_WEBHOOK_URL is invalid: %w", err)
		}
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "HTTP_ADDR", value: c.HTTPAddr},
		{name: "DATABASE_URL", value: c.DatabaseURL},
		{name: "PAYMENT_LINK_URL", value: c.PaymentLinkURL},
	}
}

type durationField struct {
	name  string
	value time.Duration
}

func (c *Config) positiveDurationChecks() []durationField {
	return []durationField{
		{name: "HTTP_READ_TIMEOUT", value: c.HTTPReadTimeout},
		{name: "HTTP_WRITE_TIMEOUT", value: c.HTTPWriteTimeout},
		{name: "LLM_TIMEOUT", value: c.LLMTimeout},
		{name: "TRANSCRIBE_TIMEOUT", value: c.TranscribeTimeout},
		{name: "VENDOR_TIMEOUT", value: c.VendorTimeout},
	}
}

// needsLLM covers the collaborators that run on every call. Whisper only
// serves uploads and reports a not configured error there instead.
func (c *Config) needsLLM() bool {
	return c.Classifier == ClassifierLLM || c.SentimentEnabled
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// TwilioConfigured reports whether SMS delivery has credentials.
func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

// VapiConfigured reports whether outbound calls have credentials.
func (c *Config) VapiConfigured() bool {
	return c.VapiAPIKey != "" && c.VapiAssistantID != "" && c.VapiPhoneNumberID != ""
}
