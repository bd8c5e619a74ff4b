// Package llm provides interfaces and implementations for text completion clients.
package llm

import (
	"context"
)

// CompleteOptions configures a completion request.
type CompleteOptions struct {
	// Model specifies the model to use (e.g., "llama3.2", "mistral").
	Model string

	// Temperature controls randomness in generation. The answer pipeline
	// uses a low value so rule answers stay deterministic.
	Temperature float32

	// MaxTokens limits the maximum number of tokens in the response.
	MaxTokens int
}

// LLM defines the interface for single-turn text completion. There is no
// streaming and no conversation state: one prompt in, one answer out.
type LLM interface {
	// Complete sends a prompt and blocks until the full response is
	// received or an error occurs.
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)
}
