package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type anthropicCompleter struct {
	settings Settings
	client   anthropic.Client
}

// NewAnthropic returns a completer backed by the Messages API.
func NewAnthropic(apiKey string, s Settings) Completer {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	if s.Model == "" {
		s.Model = "claude-sonnet-4-5"
	}
	if s.MaxTokens == 0 {
		s.MaxTokens = 4096
	}
	return &anthropicCompleter{
		settings: s,
		client:   anthropic.NewClient(opts...),
	}
}

func (c *anthropicCompleter) Name() string {
	return "anthropic"
}

func (c *anthropicCompleter) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := Resolve(c.settings.MaxTokens, opts...)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.settings.Model),
		MaxTokens: int64(o.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(float64(c.settings.Temperature)),
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("anthropic: %w", ErrEmptyCompletion)
	}
	return text.String(), nil
}
