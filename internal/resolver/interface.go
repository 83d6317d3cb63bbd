package resolver

import (
	"context"

	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// Strategy is one independent way of getting a transcript for a video URL.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, url string) transcript.Outcome
}

// Resolver tries its strategies in order until one succeeds.
type Resolver interface {
	Resolve(ctx context.Context, url string) transcript.Outcome
	// ResolveWithSource also names the strategy that produced the outcome.
	ResolveWithSource(ctx context.Context, url string) (transcript.Outcome, string)
}
