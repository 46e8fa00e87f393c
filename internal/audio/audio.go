package audio

import (
	"errors"
	"io"
)

var ErrEmptyRecording = errors.New("recording is empty")

// RecordingStore spools an uploaded recording to local disk. The cleanup
// func removes the file and is safe to call more than once.
type RecordingStore interface {
	Save(r io.Reader, filename string) (path string, cleanup func(), err error)
}
