// Package retrieval issues similarity queries against the vector store and
// normalizes raw matches into typed rule-passage candidates.
package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sportsrules/rulebook/internal/sport"
	"github.com/sportsrules/rulebook/internal/vectorstore"
)

const (
	// DefaultTopK is the number of nearest passages requested per query.
	DefaultTopK = 8

	// DefaultMinResults is the minimum filtered result count below which
	// an unfiltered fallback query is issued.
	DefaultMinResults = 2
)

// Candidate is a retrieved rule passage. Metadata fields are plain strings;
// an absent payload field yields an empty string rather than a missing key.
type Candidate struct {
	Content    string
	Sport      sport.Sport
	BaseScore  float32
	RuleNumber string
	Title      string
	Path       string
}

// Gateway retrieves candidate passages with an optional sport filter and a
// one-shot unfiltered fallback when a filtered query comes back thin.
type Gateway struct {
	store      vectorstore.VectorStore
	topK       int
	minResults int
	logger     *slog.Logger
}

// GatewayConfig holds tunables for the retrieval gateway.
type GatewayConfig struct {
	TopK       int
	MinResults int
	Logger     *slog.Logger
}

// NewGateway creates a retrieval gateway over the given vector store.
func NewGateway(store vectorstore.VectorStore, cfg GatewayConfig) *Gateway {
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	minResults := cfg.MinResults
	if minResults <= 0 {
		minResults = DefaultMinResults
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		store:      store,
		topK:       topK,
		minResults: minResults,
		logger:     logger,
	}
}

// Retrieve runs a top-K similarity query for the embedded question. When a
// sport is given it is applied as an equality filter on passage metadata; if
// the filtered set has fewer than minResults entries a second, unfiltered
// query is issued at the same K and the larger result set wins. The filter
// guard covers both a wrong classification and a sport whose indexed corpus
// is too thin to fill the context window.
//
// Candidates are returned in store order (descending similarity), unscored
// and unfiltered beyond the sport filter; ranking is the caller's job.
func (g *Gateway) Retrieve(ctx context.Context, vector []float32, s sport.Sport) ([]Candidate, error) {
	results, err := g.store.Search(ctx, vector, g.topK, string(s))
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	if s != sport.Unknown && len(results) < g.minResults {
		g.logger.Debug("few sport-filtered results, retrying without filter",
			"sport", s, "results", len(results))

		fallback, err := g.store.Search(ctx, vector, g.topK, "")
		if err != nil {
			return nil, fmt.Errorf("fallback vector search: %w", err)
		}
		if len(fallback) > len(results) {
			results = fallback
		}
	}

	candidates := make([]Candidate, len(results))
	for i, r := range results {
		candidates[i] = toCandidate(r)
	}
	return candidates, nil
}

// toCandidate maps a raw store match onto a typed candidate. Older index
// revisions stored passage text under "text" instead of "content", so both
// keys are checked.
func toCandidate(r vectorstore.SearchResult) Candidate {
	content := r.Metadata["content"]
	if content == "" {
		content = r.Metadata["text"]
	}

	return Candidate{
		Content:    content,
		Sport:      sport.Parse(r.Metadata["sport"]),
		BaseScore:  r.Score,
		RuleNumber: r.Metadata["number"],
		Title:      r.Metadata["title"],
		Path:       r.Metadata["path"],
	}
}
