package stt

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// Plan splits duration seconds into windows of chunk seconds where
// consecutive windows share overlap seconds. The last window ends exactly
// at duration.
func Plan(duration, chunk, overlap float64) []transcript.ChunkSpec {
	step := chunk - overlap
	if duration <= 0 || step <= 0 {
		return nil
	}

	count := int(math.Ceil(duration / step))
	windows := make([]transcript.ChunkSpec, 0, count)
	for i := 0; i < count; i++ {
		start := float64(i) * step
		end := math.Min(duration, start+chunk)
		if end <= start {
			break
		}
		windows = append(windows, transcript.ChunkSpec{Start: start, End: end})
	}
	return windows
}

// transcribeChunked recognizes each window sequentially and stitches the
// texts with single spaces. Failed windows contribute an empty segment.
func (b *implBackend) transcribeChunked(ctx context.Context, audioPath string) transcript.Outcome {
	if b.slicer == nil {
		return transcript.Failed(transcript.Unsupported, "no audio slicer configured for long recordings")
	}

	if r, ok := b.slicer.(Releaser); ok {
		defer r.Release(audioPath)
	}

	duration, err := b.probe.Duration(ctx, audioPath)
	if err != nil {
		return transcript.FromError(err)
	}

	windows := Plan(duration, b.chunk, b.overlap)
	b.logger.Info(ctx, "Audio duration %.1fs, %d windows", duration, len(windows))

	texts := make([]string, len(windows))
	recognized := 0
	for i, w := range windows {
		if err := ctx.Err(); err != nil {
			return transcript.FromError(err)
		}
		texts[i] = b.transcribeWindow(ctx, audioPath, i, w)
		if texts[i] != "" {
			recognized++
		}
	}

	b.logger.Info(ctx, "Recognized %d of %d windows", recognized, len(windows))
	joined := strings.Join(texts, " ")
	if strings.TrimSpace(joined) == "" {
		return transcript.Failed(transcript.Empty, "no speech recognized in any part of the audio")
	}
	return transcript.Success(joined)
}

func (b *implBackend) transcribeWindow(ctx context.Context, audioPath string, index int, w transcript.ChunkSpec) string {
	slicePath := filepath.Join(b.tempDir, uuid.NewString()+".wav")
	defer os.Remove(slicePath)

	if err := b.slicer.Slice(ctx, audioPath, w, slicePath); err != nil {
		b.logger.Warn(ctx, "Window %d [%.0fs-%.0fs] could not be cut: %v", index, w.Start, w.End, err)
		return ""
	}

	text, err := b.recognizeLocales(ctx, slicePath)
	if err != nil {
		if !errors.Is(err, ErrUnrecognized) {
			b.logger.Warn(ctx, "Window %d [%.0fs-%.0fs] failed: %v", index, w.Start, w.End, err)
		}
		return ""
	}
	return strings.TrimSpace(text)
}
