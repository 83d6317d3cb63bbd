package media

import (
	"context"
	"time"
)

// Acquirer downloads the audio track of a remote video. Errors are
// *transcript.Failure values.
type Acquirer interface {
	Acquire(ctx context.Context, url string) (*Download, error)
}

// Extractor turns a local audio or video file into 16kHz mono WAV.
type Extractor interface {
	ExtractAudio(ctx context.Context, srcPath string, opts ExtractOptions) (string, error)
	// CapFor returns the extraction cap for an upload of the given size, or
	// zero when the whole file should be used.
	CapFor(sizeBytes int64) time.Duration
}

// ExtractOptions controls a single extraction.
type ExtractOptions struct {
	// MaxDuration keeps only the first part of the recording when non-zero.
	MaxDuration time.Duration
	// OutputDir overrides the configured temp directory.
	OutputDir string
}
