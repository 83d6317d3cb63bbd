package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// GroqBaseURL is Groq's OpenAI compatible endpoint.
const GroqBaseURL = "https://api.groq.com/openai/v1"

type openaiCompleter struct {
	name     string
	settings Settings
	client   *openai.Client
}

// NewOpenAI returns a chat completion client for OpenAI or any compatible
// endpoint such as Groq.
func NewOpenAI(name, apiKey string, s Settings) Completer {
	cfg := openai.DefaultConfig(apiKey)
	if s.BaseURL != "" {
		cfg.BaseURL = s.BaseURL
	}
	if s.Model == "" {
		s.Model = openai.GPT4oMini
	}
	return &openaiCompleter{
		name:     name,
		settings: s,
		client:   openai.NewClientWithConfig(cfg),
	}
}

func (c *openaiCompleter) Name() string {
	return c.name
}

func (c *openaiCompleter) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := Resolve(c.settings.MaxTokens, opts...)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.settings.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.settings.Temperature,
		TopP:        c.settings.TopP,
		MaxTokens:   o.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%s: %w", c.name, ErrEmptyCompletion)
	}
	return resp.Choices[0].Message.Content, nil
}
