package captions

import (
	"context"
	"strings"

	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// Fetch extracts the video id, loads its captions and joins them with
// single spaces in the order the source returned them.
func (f *implFetcher) Fetch(ctx context.Context, url string) transcript.Outcome {
	id, ok := ExtractVideoID(url)
	if !ok {
		return transcript.Failed(transcript.NotFound, "could not extract a video id from the URL")
	}

	segments, err := f.source.Segments(ctx, id)
	if err != nil {
		f.logger.Warn(ctx, "Captions unavailable for %s: %v", id, err)
		return transcript.FromFailure(classifyCaptionError(err))
	}

	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		texts = append(texts, s.Text)
	}
	f.logger.Info(ctx, "Fetched %d caption segments for %s", len(segments), id)
	return transcript.Success(strings.Join(texts, " "))
}

func classifyCaptionError(err error) *transcript.Failure {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no transcript"), strings.Contains(msg, "no subtitles"):
		return &transcript.Failure{Kind: transcript.NotFound, Message: err.Error()}
	case strings.Contains(msg, "unavailable"):
		return &transcript.Failure{Kind: transcript.ServiceUnavailable, Message: err.Error()}
	case strings.Contains(msg, "format not supported"):
		return &transcript.Failure{Kind: transcript.Unsupported, Message: err.Error()}
	}
	return transcript.AsFailure(err)
}
