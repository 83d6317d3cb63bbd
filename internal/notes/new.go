package notes

import (
	"github.com/yasmineatrous/Speechscribe/internal/config"
	"github.com/yasmineatrous/Speechscribe/internal/llm"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
)

type implGenerator struct {
	completer      llm.Completer
	counter        TokenCounter
	logger         logger.Logger
	maxInputTokens int
	maxTokens      int
	contextTokens  int
}

// New creates a Generator. A nil counter uses tiktoken.
func New(cfg *config.Config, completer llm.Completer, counter TokenCounter, log logger.Logger) Generator {
	if counter == nil {
		counter = NewTokenCounter()
	}
	return &implGenerator{
		completer:      completer,
		counter:        counter,
		logger:         log,
		maxInputTokens: cfg.Notes.MaxInputTokens,
		maxTokens:      cfg.LLM.MaxTokens,
		contextTokens:  cfg.LLM.ContextTokens,
	}
}
