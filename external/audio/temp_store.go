package audio

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/foxseedlab/kaishu/internal/audio"
	"github.com/google/uuid"
)

const defaultRecordingExt = ".wav"

type TempStore struct {
	dir string
}

// NewTempStore writes into dir, or the system temp dir when dir is empty.
func NewTempStore(dir string) audio.RecordingStore {
	return &TempStore{dir: dir}
}

func (s *TempStore) Save(r io.Reader, filename string) (string, func(), error) {
	f, err := os.CreateTemp(s.dir, "recording-"+uuid.NewString()+"-*"+recordingExt(filename))
	if err != nil {
		return "", nil, fmt.Errorf("create temp recording: %w", err)
	}
	path := f.Name()
	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				slog.Warn("failed to remove temp recording", "path", path, "error", err)
			}
		})
	}

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("write temp recording: %w", err)
	}
	if n == 0 {
		cleanup()
		return "", nil, audio.ErrEmptyRecording
	}
	return path, cleanup, nil
}

func recordingExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".wav", ".mp3", ".m4a", ".ogg", ".webm", ".flac", ".mp4", ".mpeg", ".mpga":
		return ext
	default:
		return defaultRecordingExt
	}
}
