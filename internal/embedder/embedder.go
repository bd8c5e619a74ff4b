// Package embedder provides interfaces and implementations for text embedding.
package embedder

import (
	"context"
	"strings"
)

// Embedder defines the interface for text embedding services.
//
// The same embedding model must be used at indexing time and query time;
// the service assumes this consistency but cannot verify it.
type Embedder interface {
	// Embed generates an embedding vector for a single text input.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embedding vectors for multiple text inputs.
	// Returns a slice of embeddings in the same order as the input texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the dimensionality of the embedding vectors.
	Dimension() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}

// Normalize collapses runs of whitespace and trims the text before it is
// embedded, so that formatting differences between the indexed passages and
// incoming questions do not perturb the vectors.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
