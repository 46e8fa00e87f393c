package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/kaishu/internal/config"
	"github.com/joho/godotenv"
)

type envConfig struct {
	Env                string        `env:"ENV" envDefault:"production"`
	HTTPAddr           string        `env:"HTTP_ADDR" envDefault:":8000"`
	HTTPReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	DatabaseURL        string        `env:"DATABASE_URL,required"`

	Classifier        string        `env:"CLASSIFIER" envDefault:"keyword"`
	SentimentEnabled  bool          `env:"SENTIMENT_ENABLED" envDefault:"false"`
	LLMBaseURL        string        `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	LLMAPIKey         string        `env:"LLM_API_KEY"`
	LLMModel          string        `env:"LLM_MODEL" envDefault:"llama-3.1-8b-instant"`
	LLMSentimentModel string        `env:"LLM_SENTIMENT_MODEL"`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT" envDefault:"8s"`

	Transcriber                string        `env:"TRANSCRIBER" envDefault:"whisper"`
	WhisperModel               string        `env:"WHISPER_MODEL" envDefault:"whisper-large-v3"`
	TranscribeTimeout          time.Duration `env:"TRANSCRIBE_TIMEOUT" envDefault:"60s"`
	TranscribeLanguage         string        `env:"TRANSCRIBE_LANGUAGE" envDefault:"en-US"`
	GoogleCloudProjectID       string        `env:"GOOGLE_CLOUD_PROJECT_ID"`
	GoogleCloudCredentialsJSON string        `env:"GOOGLE_CLOUD_CREDENTIALS_JSON"`
	GoogleCloudSpeechLocation  string        `env:"GOOGLE_CLOUD_SPEECH_LOCATION" envDefault:"global"`
	GoogleCloudSpeechModel     string        `env:"GOOGLE_CLOUD_SPEECH_MODEL" envDefault:"long"`

	TwilioAccountSID    string        `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken     string        `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber   string        `env:"TWILIO_PHONE_NUMBER"`
	TwilioBaseURL       string        `env:"TWILIO_BASE_URL" envDefault:"https://api.twilio.com"`
	TwilioLookupBaseURL string        `env:"TWILIO_LOOKUP_BASE_URL" envDefault:"https://lookups.twilio.com"`
	PhoneLookupEnabled  bool          `env:"PHONE_LOOKUP_ENABLED" envDefault:"false"`
	VapiAPIKey          string        `env:"VAPI_API_KEY"`
	VapiAssistantID     string        `env:"VAPI_ASSISTANT_ID"`
	VapiPhoneNumberID   string        `env:"VAPI_PHONE_NUMBER_ID"`
	VapiBaseURL         string        `env:"VAPI_BASE_URL" envDefault:"https://api.vapi.ai"`
	VendorTimeout       time.Duration `env:"VENDOR_TIMEOUT" envDefault:"10s"`
	PaymentLinkURL      string        `env:"PAYMENT_LINK_URL" envDefault:"https://your-secure-link.com/pay"`
	OutcomeWebhookURL   string        `env:"OUTCOME_WEBHOOK_URL"`
}

// Load reads .env (when present) and the process environment. Variables
// already set in the environment take precedence over the file.
func Load() (*internalconfig.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	sentimentModel := raw.LLMSentimentModel
	if sentimentModel == "" {
		sentimentModel = raw.LLMModel
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		HTTPAddr:                   raw.HTTPAddr,
		HTTPReadTimeout:            raw.HTTPReadTimeout,
		HTTPWriteTimeout:           raw.HTTPWriteTimeout,
		CORSAllowedOrigins:         trimAll(raw.CORSAllowedOrigins),
		DatabaseURL:                raw.DatabaseURL,
		Classifier:                 strings.ToLower(strings.TrimSpace(raw.Classifier)),
		SentimentEnabled:           raw.SentimentEnabled,
		LLMBaseURL:                 raw.LLMBaseURL,
		LLMAPIKey:                  raw.LLMAPIKey,
		LLMModel:                   raw.LLMModel,
		LLMSentimentModel:          sentimentModel,
		LLMTimeout:                 raw.LLMTimeout,
		Transcriber:                strings.ToLower(strings.TrimSpace(raw.Transcriber)),
		WhisperModel:               raw.WhisperModel,
		TranscribeTimeout:          raw.TranscribeTimeout,
		TranscribeLanguage:         raw.TranscribeLanguage,
		GoogleCloudProjectID:       raw.GoogleCloudProjectID,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		GoogleCloudSpeechLocation:  raw.GoogleCloudSpeechLocation,
		GoogleCloudSpeechModel:     raw.GoogleCloudSpeechModel,
		TwilioAccountSID:           raw.TwilioAccountSID,
		TwilioAuthToken:            raw.TwilioAuthToken,
		TwilioPhoneNumber:          raw.TwilioPhoneNumber,
		TwilioBaseURL:              raw.TwilioBaseURL,
		TwilioLookupBaseURL:        raw.TwilioLookupBaseURL,
		PhoneLookupEnabled:         raw.PhoneLookupEnabled,
		VapiAPIKey:                 raw.VapiAPIKey,
		VapiAssistantID:            raw.VapiAssistantID,
		VapiPhoneNumberID:          raw.VapiPhoneNumberID,
		VapiBaseURL:                raw.VapiBaseURL,
		VendorTimeout:              raw.VendorTimeout,
		PaymentLinkURL:             raw.PaymentLinkURL,
		OutcomeWebhookURL:          raw.OutcomeWebhookURL,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
