package resolver

import (
	"context"
	"fmt"

	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

const alternativeHint = "Try uploading the audio file or recording it directly instead."

func (r *implResolver) Resolve(ctx context.Context, url string) transcript.Outcome {
	out, _ := r.ResolveWithSource(ctx, url)
	return out
}

// ResolveWithSource runs the strategies one at a time. The first success is
// returned at once; any failure moves on to the next strategy regardless of
// its kind.
func (r *implResolver) ResolveWithSource(ctx context.Context, url string) (transcript.Outcome, string) {
	if len(r.strategies) == 0 {
		return transcript.Failed(transcript.NotFound, "no transcript sources are configured. "+alternativeHint), ""
	}

	var last *transcript.Failure
	var lastName string
	for i, s := range r.strategies {
		if err := ctx.Err(); err != nil {
			return transcript.FromError(err), ""
		}

		r.logger.Info(ctx, "[%d/%d] Trying %s for %s", i+1, len(r.strategies), s.Name(), url)
		out := r.attempt(ctx, s, url)
		if out.OK() {
			r.logger.Info(ctx, "Transcript obtained via %s (%d chars)", s.Name(), len(out.Text()))
			return out, s.Name()
		}

		last, lastName = out.Failure(), s.Name()
		r.logger.Warn(ctx, "%s failed (%s): %s", s.Name(), last.Kind, last.Message)
	}

	return transcript.Failed(last.Kind, fmt.Sprintf(
		"all transcript sources failed; last attempt (%s): %s. %s", lastName, last.Message, alternativeHint,
	)), ""
}

// attempt runs one strategy and turns a panic into Failed(Unknown).
func (r *implResolver) attempt(ctx context.Context, s Strategy, url string) (out transcript.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error(ctx, "%s strategy panicked: %v", s.Name(), rec)
			out = transcript.Failed(transcript.Unknown, fmt.Sprintf("%s strategy crashed: %v", s.Name(), rec))
		}
	}()
	return s.Attempt(ctx, url)
}
