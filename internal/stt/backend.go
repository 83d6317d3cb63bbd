package stt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// Transcribe checks the file, then recognizes it whole or in windows
// depending on its size. It never returns a raw error.
func (b *implBackend) Transcribe(ctx context.Context, audioPath string) transcript.Outcome {
	info, err := os.Stat(audioPath)
	if err != nil {
		return transcript.Failed(transcript.NotFound, fmt.Sprintf("audio file not found: %s", audioPath))
	}
	if info.Size() == 0 {
		return transcript.Failed(transcript.Empty, "audio file is empty")
	}

	if info.Size() > b.threshold {
		b.logger.Info(ctx, "Audio is %d bytes, transcribing in windows: %s", info.Size(), audioPath)
		return b.transcribeChunked(ctx, audioPath)
	}

	b.logger.Info(ctx, "Transcribing with %s: %s", b.recognizer.Name(), audioPath)
	text, err := b.recognizeLocales(ctx, audioPath)
	if err != nil {
		if errors.Is(err, ErrUnrecognized) {
			return transcript.Failed(transcript.Empty, "no speech could be recognized")
		}
		return transcript.FromError(err)
	}
	return transcript.Success(text)
}

// recognizeLocales tries every locale in order. The first non-empty text
// wins; an unrecognized result moves on; a service error stops the loop.
func (b *implBackend) recognizeLocales(ctx context.Context, audioPath string) (string, error) {
	for _, locale := range b.locales {
		text, err := b.recognizer.Recognize(ctx, audioPath, locale)
		if err != nil {
			if errors.Is(err, ErrUnrecognized) {
				b.logger.Debug(ctx, "No speech recognized for locale %s", locale)
				continue
			}
			return "", fmt.Errorf("recognize %s: %w", locale, err)
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	return "", ErrUnrecognized
}

// localeBase returns the language part of a locale, e.g. "en" for "en-US".
func localeBase(locale string) string {
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		return locale[:i]
	}
	return locale
}
