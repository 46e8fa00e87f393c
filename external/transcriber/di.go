package transcriber

import (
	"context"
	"time"

	"github.com/foxseedlab/kaishu/internal/config"
	"github.com/foxseedlab/kaishu/internal/transcriber"
	"github.com/openai/openai-go"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (transcriber.Transcriber, error) {
		c := do.MustInvoke[*config.Config](i)
		var t transcriber.Transcriber
		if c.Transcriber == config.TranscriberGoogle {
			t = NewCloudSpeechTranscriber(CloudSpeechConfig{
				ProjectID:       c.GoogleCloudProjectID,
				CredentialsJSON: c.GoogleCloudCredentialsJSON,
				Language:        c.TranscribeLanguage,
				Location:        c.GoogleCloudSpeechLocation,
				Model:           c.GoogleCloudSpeechModel,
			})
		} else {
			t = NewWhisperTranscriber(do.MustInvoke[*openai.Client](i), WhisperConfig{
				APIKey:   c.LLMAPIKey,
				Model:    c.WhisperModel,
				Language: c.TranscribeLanguage,
				Timeout:  c.TranscribeTimeout,
			})
		}
		return withTimeout(t, c.TranscribeTimeout), nil
	})
}

type timeoutTranscriber struct {
	next    transcriber.Transcriber
	timeout time.Duration
}

func withTimeout(next transcriber.Transcriber, timeout time.Duration) transcriber.Transcriber {
	return &timeoutTranscriber{next: next, timeout: timeout}
}

func (t *timeoutTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Transcribe(ctx, audioPath)
}
