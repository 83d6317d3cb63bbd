package llm

import (
	"fmt"

	"github.com/yasmineatrous/Speechscribe/internal/config"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
)

// Settings holds the sampling parameters shared by every provider.
type Settings struct {
	Model       string
	BaseURL     string
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// New returns the completer selected by cfg.Provider.
func New(cfg config.LLMConfig, log logger.Logger) (Completer, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, fmt.Errorf("no API key configured for %s", cfg.Provider)
	}

	s := Settings{
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		MaxTokens:   cfg.MaxTokens,
	}

	switch cfg.Provider {
	case "gemini":
		return NewGemini(cfg.APIKeys, s, log), nil
	case "openai":
		return NewOpenAI("openai", cfg.APIKeys[0], s), nil
	case "groq":
		if s.BaseURL == "" {
			s.BaseURL = GroqBaseURL
		}
		return NewOpenAI("groq", cfg.APIKeys[0], s), nil
	case "anthropic":
		return NewAnthropic(cfg.APIKeys[0], s), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
