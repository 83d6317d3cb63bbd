package resolver

import (
	"context"

	"github.com/yasmineatrous/Speechscribe/internal/captions"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
	"github.com/yasmineatrous/Speechscribe/internal/media"
	"github.com/yasmineatrous/Speechscribe/internal/reconstruct"
	"github.com/yasmineatrous/Speechscribe/internal/stt"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

const (
	StrategyCaptions    = "captions"
	StrategyDownload    = "download"
	StrategyReconstruct = "reconstruct"
)

type captionsStrategy struct {
	fetcher captions.Fetcher
}

// CaptionsStrategy reads existing captions.
func CaptionsStrategy(f captions.Fetcher) Strategy {
	return captionsStrategy{fetcher: f}
}

func (s captionsStrategy) Name() string { return StrategyCaptions }

func (s captionsStrategy) Attempt(ctx context.Context, url string) transcript.Outcome {
	return s.fetcher.Fetch(ctx, url)
}

type downloadStrategy struct {
	acquirer media.Acquirer
	backend  stt.Backend
	logger   logger.Logger
}

// DownloadStrategy downloads the audio and transcribes it. The download is
// released whether transcription succeeds, fails or panics.
func DownloadStrategy(a media.Acquirer, b stt.Backend, log logger.Logger) Strategy {
	return downloadStrategy{acquirer: a, backend: b, logger: log}
}

func (s downloadStrategy) Name() string { return StrategyDownload }

func (s downloadStrategy) Attempt(ctx context.Context, url string) transcript.Outcome {
	dl, err := s.acquirer.Acquire(ctx, url)
	if err != nil {
		return transcript.FromError(err)
	}
	defer func() {
		if err := dl.Release(); err != nil {
			s.logger.Warn(ctx, "Failed to remove download %s: %v", dl.Path, err)
		}
	}()

	return s.backend.Transcribe(ctx, dl.Path)
}

type reconstructStrategy struct {
	reconstructor reconstruct.Reconstructor
}

// ReconstructStrategy asks a completion model for an approximation.
func ReconstructStrategy(r reconstruct.Reconstructor) Strategy {
	return reconstructStrategy{reconstructor: r}
}

func (s reconstructStrategy) Name() string { return StrategyReconstruct }

func (s reconstructStrategy) Attempt(ctx context.Context, url string) transcript.Outcome {
	return s.reconstructor.Reconstruct(ctx, url)
}
