// Package llm defines a provider-agnostic contract for text generation backends.
package llm

import (
	"context"
	"errors"
)

// ErrBackend wraps transport failures from a generation backend. No retry
// logic lives here; callers decide what a failed generation means.
var ErrBackend = errors.New("llm: backend error")

// UnreadableResponse is returned as the answer text when a backend replies
// with an envelope none of the known adapters can read. A malformed model
// response is a soft failure, visible to the caller, not an error.
const UnreadableResponse = "Could not read the response from the language model."

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
