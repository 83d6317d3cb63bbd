package stt

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type openaiRecognizer struct {
	name   string
	model  string
	client *openai.Client
}

// NewOpenAI returns a recognizer using an OpenAI compatible transcription
// endpoint. Groq is served by the same client with its own base URL.
func NewOpenAI(name, apiKey, baseURL, model string) Recognizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &openaiRecognizer{
		name:   name,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (r *openaiRecognizer) Name() string {
	return r.name
}

func (r *openaiRecognizer) Recognize(ctx context.Context, audioPath, locale string) (string, error) {
	resp, err := r.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:       r.model,
		FilePath:    audioPath,
		Language:    localeBase(locale),
		Temperature: 0,
		Format:      openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", fmt.Errorf("%s transcription: %w", r.name, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrUnrecognized
	}
	return text, nil
}
