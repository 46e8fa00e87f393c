package audio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/foxseedlab/kaishu/internal/audio"
)

func TestTempStore_SaveAndCleanup(t *testing.T) {
	dir := t.TempDir()
	path, cleanup, err := NewTempStore(dir).Save(strings.NewReader("RIFF"), "call.WAV")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if filepath.Dir(path) != dir || filepath.Ext(path) != ".wav" {
		t.Fatalf("unexpected path: %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "RIFF" {
		t.Fatalf("unexpected content: %q err=%v", b, err)
	}

	cleanup()
	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed, stat err=%v", err)
	}
}

func TestTempStore_EmptyRecording(t *testing.T) {
	dir := t.TempDir()
	_, _, err := NewTempStore(dir).Save(strings.NewReader(""), "x.wav")
	if !errors.Is(err, audio.ErrEmptyRecording) {
		t.Fatalf("expected ErrEmptyRecording, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("empty upload should leave no file, found %d", len(entries))
	}
}

func TestRecordingExt(t *testing.T) {
	cases := map[string]string{"a.mp3": ".mp3", "b": ".wav", "c.exe": ".wav", "d.M4A": ".m4a"}
	for in, want := range cases {
		if got := recordingExt(in); got != want {
			t.Fatalf("%q: expected %s, got %s", in, want, got)
		}
	}
}
