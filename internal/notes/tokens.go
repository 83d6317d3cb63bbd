package notes

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the tokenizer used to size prompts.
const DefaultEncoding = "cl100k_base"

// safetyMargin pads the estimate for models whose tokenizer differs.
const safetyMargin = 1.2

// TokenCounter estimates the number of tokens in a text.
type TokenCounter interface {
	Count(text string) int
}

type tiktokenCounter struct {
	once     sync.Once
	encoding *tiktoken.Tiktoken
	mu       sync.Mutex
}

// NewTokenCounter loads the encoding on first use and falls back to four
// characters per token when it cannot be loaded.
func NewTokenCounter() TokenCounter {
	return &tiktokenCounter{}
}

func (c *tiktokenCounter) Count(text string) int {
	c.once.Do(func() {
		enc, err := tiktoken.GetEncoding(DefaultEncoding)
		if err == nil {
			c.encoding = enc
		}
	})
	if c.encoding == nil {
		return CharEstimate(text)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.encoding.Encode(text, nil, nil))
}

// CharEstimate is the fallback estimate of four characters per token.
func CharEstimate(text string) int {
	return len(text) / 4
}

// CapMaxTokens returns the largest output limit that fits the context
// window, never above requested and never below 100.
func CapMaxTokens(requested, contextWindow, estimatedInput, buffer int) int {
	if contextWindow <= 0 {
		return requested
	}

	available := contextWindow - int(float64(estimatedInput)*safetyMargin) - buffer
	if available < 100 {
		available = 100
	}
	if requested > 0 && requested < available {
		return requested
	}
	return available
}
