// Package repository defines the rule corpus model and the data access
// interface for lexical (keyword) search, which runs alongside the vector
// pipeline without LLM involvement.
package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// Rule is one retrievable rule passage as exported from the rulebook corpus.
type Rule struct {
	ID      string
	Sport   string
	Number  string
	Title   string
	Content string
	Path    string
}

// RuleRepository provides keyword access to the rule corpus.
type RuleRepository interface {
	// Upsert inserts or replaces rules by ID.
	Upsert(ctx context.Context, rules []Rule) error

	// Search performs full-text search over number, title, and content.
	// A non-empty sport restricts hits to that sport. Results are ordered
	// by lexical match rank.
	Search(ctx context.Context, query, sport string, limit int) ([]Rule, error)

	// Count returns the number of indexed rules.
	Count(ctx context.Context) (int, error)
}
