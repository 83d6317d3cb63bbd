package reconstruct

import (
	"context"

	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// Reconstructor approximates a transcript from what is publicly known about
// a video when no audio based method worked.
type Reconstructor interface {
	Reconstruct(ctx context.Context, url string) transcript.Outcome
}
