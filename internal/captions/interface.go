package captions

import (
	"context"

	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// Source returns the caption segments of a video in playback order.
type Source interface {
	Segments(ctx context.Context, videoID string) ([]transcript.Segment, error)
}

// Fetcher resolves a video URL to its caption text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) transcript.Outcome
}
