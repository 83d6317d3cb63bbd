package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/yasmineatrous/Speechscribe/internal/llm"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// Generate sends the notes prompt for text to the completion model.
func (g *implGenerator) Generate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", transcript.NewFailure(transcript.Empty, "no transcript to generate notes from")
	}

	prompt := BuildPrompt(text)
	promptTokens := g.counter.Count(prompt)
	if g.maxInputTokens > 0 && promptTokens > g.maxInputTokens {
		return "", transcript.NewFailure(transcript.TooLarge,
			"transcript is about %d tokens, the limit is %d", promptTokens, g.maxInputTokens)
	}

	maxTokens := CapMaxTokens(g.maxTokens, g.contextTokens, promptTokens, 100)
	g.logger.Info(ctx, "Generating notes with %s: %d prompt tokens, max %d output tokens",
		g.completer.Name(), promptTokens, maxTokens)

	out, err := g.completer.Complete(ctx, prompt, llm.WithMaxTokens(maxTokens))
	if err != nil {
		return "", fmt.Errorf("generate notes: %w", err)
	}
	return strings.TrimSpace(out), nil
}
