package stt

import (
	"context"
	"errors"

	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// ErrUnrecognized is returned by a Recognizer when the service answered but
// understood no speech. Any other error is a transport or service error.
var ErrUnrecognized = errors.New("speech not recognized")

// Recognizer performs one speech-to-text call for one file and one locale.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, audioPath, locale string) (string, error)
}

// Backend turns an audio file into a transcript outcome.
type Backend interface {
	Transcribe(ctx context.Context, audioPath string) transcript.Outcome
}

// DurationProbe reports the duration of an audio file in seconds.
type DurationProbe interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Slicer cuts one time window of src into a standalone audio file at dst.
type Slicer interface {
	Slice(ctx context.Context, src string, window transcript.ChunkSpec, dst string) error
}
