package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/foxseedlab/kaishu/internal/transcriber"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type WhisperConfig struct {
	APIKey   string
	Model    string
	Language string
	// Timeout replaces the shared client's completion timeout for uploads.
	Timeout time.Duration
}

type WhisperTranscriber struct {
	client     *openai.Client
	configured bool
	model      string
	language   string
	timeout    time.Duration
}

func NewWhisperTranscriber(client *openai.Client, cfg WhisperConfig) transcriber.Transcriber {
	return &WhisperTranscriber{
		client:     client,
		configured: strings.TrimSpace(cfg.APIKey) != "",
		model:      cfg.Model,
		language:   isoLanguage(cfg.Language),
		timeout:    cfg.Timeout,
	}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if !t.configured {
		return "", transcriber.ErrNotConfigured
	}
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	params := openai.AudioTranscriptionNewParams{
		File:  f,
		Model: openai.AudioModel(t.model),
	}
	if t.language != "" {
		params.Language = openai.String(t.language)
	}
	var opts []option.RequestOption
	if t.timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(t.timeout))
	}
	resp, err := t.client.Audio.Transcriptions.New(ctx, params, opts...)
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// isoLanguage reduces a BCP-47 tag to the ISO-639-1 code Whisper expects.
func isoLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}
