package transcriber

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	speechpb "cloud.google.com/go/speech/apiv2/speechpb"
	llmimpl "github.com/foxseedlab/kaishu/external/llm"
	"github.com/foxseedlab/kaishu/internal/transcriber"
)

func TestWhisperTranscriber_Success(t *testing.T) {
	var gotModel, gotLanguage, gotFilename, gotAudio string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart: %v", err)
			return
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			return
		}
		defer func() { _ = file.Close() }()
		gotFilename = header.Filename
		b, _ := io.ReadAll(file)
		gotAudio = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":" yes I will pay "}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "note.wav")
	if err := os.WriteFile(path, []byte("RIFF-audio"), 0o600); err != nil {
		t.Fatalf("failed to write audio: %v", err)
	}

	client := llmimpl.NewClient(llmimpl.ClientConfig{BaseURL: server.URL + "/v1", APIKey: "k", Timeout: time.Second})
	text, err := NewWhisperTranscriber(client, WhisperConfig{APIKey: "k", Model: "whisper-large-v3", Language: "en-US"}).Transcribe(context.Background(), path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if text != "yes I will pay" {
		t.Fatalf("unexpected transcript: %q", text)
	}
	if gotModel != "whisper-large-v3" || gotLanguage != "en" {
		t.Fatalf("unexpected form: model=%s language=%s", gotModel, gotLanguage)
	}
	if !strings.HasSuffix(gotFilename, ".wav") || gotAudio != "RIFF-audio" {
		t.Fatalf("unexpected file part: %s %q", gotFilename, gotAudio)
	}
}

func TestWhisperTranscriber_MissingFile(t *testing.T) {
	client := llmimpl.NewClient(llmimpl.ClientConfig{BaseURL: "http://127.0.0.1:1", APIKey: "k"})
	if _, err := NewWhisperTranscriber(client, WhisperConfig{APIKey: "k", Model: "m", Language: "en"}).Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWhisperTranscriber_UsesTranscribeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(600 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"later"}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "note.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o600); err != nil {
		t.Fatalf("failed to write audio: %v", err)
	}

	// the shared client is tuned for short completions
	client := llmimpl.NewClient(llmimpl.ClientConfig{BaseURL: server.URL + "/v1", APIKey: "k", Timeout: 200 * time.Millisecond})
	tr := NewWhisperTranscriber(client, WhisperConfig{APIKey: "k", Model: "m", Language: "en", Timeout: 5 * time.Second})
	text, err := tr.Transcribe(context.Background(), path)
	if err != nil {
		t.Fatalf("expected transcription to outlive the completion timeout, got %v", err)
	}
	if text != "later" {
		t.Fatalf("unexpected transcript: %q", text)
	}
}

func TestWhisperTranscriber_NotConfigured(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "note.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o600); err != nil {
		t.Fatalf("failed to write audio: %v", err)
	}
	client := llmimpl.NewClient(llmimpl.ClientConfig{BaseURL: server.URL + "/v1"})
	_, err := NewWhisperTranscriber(client, WhisperConfig{Model: "m"}).Transcribe(context.Background(), path)
	if !errors.Is(err, transcriber.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("expected no request without an api key, got %d", hits)
	}
}

func TestIsoLanguage(t *testing.T) {
	cases := map[string]string{"en-US": "en", "hi_IN": "hi", "EN": "en", "": ""}
	for in, want := range cases {
		if got := isoLanguage(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestCloudSpeechRecognizeRequest(t *testing.T) {
	tr := NewCloudSpeechTranscriber(CloudSpeechConfig{ProjectID: "p", Language: "en-US", Model: " long "}).(*CloudSpeechTranscriber)
	req := tr.recognizeRequest([]byte("audio"))
	if req.GetRecognizer() != "projects/p/locations/global/recognizers/_" {
		t.Fatalf("unexpected recognizer: %s", req.GetRecognizer())
	}
	if req.GetConfig().GetModel() != "long" || req.GetConfig().GetLanguageCodes()[0] != "en-US" {
		t.Fatalf("unexpected config: %+v", req.GetConfig())
	}
	if string(req.GetContent()) != "audio" {
		t.Fatalf("unexpected content: %q", req.GetContent())
	}
}

func TestJoinResults(t *testing.T) {
	results := []*speechpb.SpeechRecognitionResult{
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: " yes "}}},
		{},
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "I will pay"}}},
	}
	if got := joinResults(results); got != "yes I will pay" {
		t.Fatalf("unexpected join: %q", got)
	}
}

type slowTranscriber struct{}

func (slowTranscriber) Transcribe(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	_, err := withTimeout(slowTranscriber{}, 10*time.Millisecond).Transcribe(context.Background(), "x")
	if err == nil {
		t.Fatal("expected deadline error")
	}
}
