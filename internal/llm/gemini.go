package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yasmineatrous/Speechscribe/internal/logger"
	"google.golang.org/genai"
)

type geminiCompleter struct {
	apiKeys  []string
	settings Settings
	logger   logger.Logger

	mu         sync.Mutex
	currentKey int
}

// NewGemini returns a completer that rotates through the supplied Gemini
// API keys when one is rate limited.
func NewGemini(apiKeys []string, s Settings, log logger.Logger) Completer {
	if s.Model == "" {
		s.Model = "gemini-2.5-flash"
	}
	return &geminiCompleter{apiKeys: apiKeys, settings: s, logger: log}
}

func (g *geminiCompleter) Name() string {
	return "gemini"
}

// Complete rotates API keys on 429 / quota errors.
func (g *geminiCompleter) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := Resolve(g.settings.MaxTokens, opts...)
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.settings.Temperature),
	}
	if g.settings.TopP > 0 {
		genCfg.TopP = genai.Ptr(g.settings.TopP)
	}
	if o.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(o.MaxTokens)
	}

	var lastErr error
	for range len(g.apiKeys) {
		key, index := g.key()

		clientCfg := &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		}
		if g.settings.BaseURL != "" {
			clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.settings.BaseURL}
		}
		client, err := genai.NewClient(ctx, clientCfg)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotate(index)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.settings.Model, genai.Text(prompt), genCfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", index+1)
				g.rotate(index)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				text.WriteString(part.Text)
			}
			if strings.TrimSpace(text.String()) != "" {
				return text.String(), nil
			}
		}
		return "", fmt.Errorf("gemini: %w", ErrEmptyCompletion)
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiCompleter) key() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

// rotate moves past the key at index unless another request already did.
func (g *geminiCompleter) rotate(index int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == index {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}
