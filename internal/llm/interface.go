package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when a provider answers with no text.
var ErrEmptyCompletion = errors.New("empty completion")

// Completer sends one plain-text prompt and returns one plain-text answer.
type Completer interface {
	Name() string
	Complete(ctx context.Context, prompt string, opts ...Option) (string, error)
}

// Option adjusts a single completion call.
type Option func(*CallOptions)

// CallOptions are the per-call settings collected from Options.
type CallOptions struct {
	MaxTokens int
}

// WithMaxTokens overrides the configured output limit for one call.
func WithMaxTokens(n int) Option {
	return func(o *CallOptions) {
		o.MaxTokens = n
	}
}

// Resolve applies opts over the provider defaults.
func Resolve(defaultMax int, opts ...Option) CallOptions {
	o := CallOptions{MaxTokens: defaultMax}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
