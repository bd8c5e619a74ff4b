// Package vectorstore provides interfaces and implementations for vector
// similarity search over the indexed rule corpus.
package vectorstore

import (
	"context"
)

// Passage is an indexed rule passage with its embedding.
type Passage struct {
	ID      string
	Vector  []float32
	Content string
	Sport   string
	Number  string
	Title   string
	Path    string
}

// SearchResult represents a similarity match from the vector store.
// Score is cosine similarity in [0,1]; Metadata carries the passage
// payload fields as stored (sport, number, title, content, path).
type SearchResult struct {
	ID       string
	Score    float32
	Metadata map[string]string
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// EnsureCollection creates the rule collection if it does not exist.
	EnsureCollection(ctx context.Context, dimension int) error

	// Upsert inserts or updates passages in the store.
	Upsert(ctx context.Context, passages []Passage) error

	// Search performs similarity search for the top-K nearest passages.
	// A non-empty sportFilter restricts matches to passages whose sport
	// payload equals the filter value.
	Search(ctx context.Context, vector []float32, topK int, sportFilter string) ([]SearchResult, error)
}
