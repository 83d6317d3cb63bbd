package processor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yasmineatrous/Speechscribe/internal/media"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// Transcribe detects the file type, extracts audio when needed and runs the
// speech backend.
func (p *implProcessor) Transcribe(ctx context.Context, path string) transcript.Outcome {
	stat, err := os.Stat(path)
	if err != nil {
		return transcript.Failed(transcript.NotFound, fmt.Sprintf("file not found: %s", path))
	}
	if stat.Size() == 0 {
		return transcript.Failed(transcript.Empty, "file is empty")
	}

	audioPath, temporary, err := p.prepareAudio(ctx, path, stat.Size())
	if err != nil {
		return transcript.FromError(err)
	}
	if temporary {
		defer p.cleanupTempFile(ctx, audioPath)
	}

	p.logger.Info(ctx, "Transcribing %s", audioPath)
	return p.backend.Transcribe(ctx, audioPath)
}

// prepareAudio returns a file the backend can read and whether it is a
// temporary file owned by the caller.
func (p *implProcessor) prepareAudio(ctx context.Context, path string, size int64) (string, bool, error) {
	kind, mime, err := media.Detect(path)
	if err != nil {
		return "", false, transcript.AsFailure(fmt.Errorf("detect file type: %w", err))
	}
	p.logger.Debug(ctx, "Detected %s (%s)", kind, mime)

	limit := p.extractor.CapFor(size)
	if limit > 0 {
		p.logger.Info(ctx, "Large file (%d MB), using the first %s", size/(1024*1024), limit)
	}
	opts := media.ExtractOptions{MaxDuration: limit}

	switch kind {
	case media.KindVideo:
		audioPath, err := p.extractor.ExtractAudio(ctx, path, opts)
		if err != nil {
			return "", false, fmt.Errorf("extract audio: %w", err)
		}
		return audioPath, true, nil

	case media.KindAudio:
		if strings.Contains(mime, "wav") && limit == 0 {
			return path, false, nil
		}
		audioPath, err := p.extractor.ExtractAudio(ctx, path, opts)
		if err != nil {
			// the recognizer accepts mp3, flac and ogg directly
			p.logger.Warn(ctx, "Could not convert %s, sending it as is: %v", path, err)
			return path, false, nil
		}
		return audioPath, true, nil

	default:
		return "", false, transcript.NewFailure(transcript.Unsupported,
			"unsupported file type %s, upload an audio or video file", mime)
	}
}
