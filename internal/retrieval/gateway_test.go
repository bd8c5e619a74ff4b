package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/sportsrules/rulebook/internal/sport"
	"github.com/sportsrules/rulebook/internal/vectorstore"
)

// fakeStore replays canned search results and records the filters it saw.
type fakeStore struct {
	responses []searchCall
	calls     []string
	err       error
}

type searchCall struct {
	results []vectorstore.SearchResult
}

func (f *fakeStore) EnsureCollection(ctx context.Context, dimension int) error { return nil }

func (f *fakeStore) Upsert(ctx context.Context, passages []vectorstore.Passage) error { return nil }

func (f *fakeStore) Search(ctx context.Context, vector []float32, topK int, sportFilter string) ([]vectorstore.SearchResult, error) {
	f.calls = append(f.calls, sportFilter)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, nil
	}
	call := f.responses[0]
	f.responses = f.responses[1:]
	return call.results, nil
}

func golfResult(content string) vectorstore.SearchResult {
	return vectorstore.SearchResult{
		Score: 0.5,
		Metadata: map[string]string{
			"sport":   "golf",
			"content": content,
		},
	}
}

func TestRetrieve_NoSportNoFallback(t *testing.T) {
	store := &fakeStore{responses: []searchCall{
		{results: []vectorstore.SearchResult{golfResult("one")}},
	}}
	g := NewGateway(store, GatewayConfig{})

	candidates, err := g.Retrieve(context.Background(), []float32{0.1}, sport.Unknown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(store.calls) != 1 {
		t.Errorf("expected 1 store query, got %d", len(store.calls))
	}
	if store.calls[0] != "" {
		t.Errorf("expected unfiltered query, got filter %q", store.calls[0])
	}
}

func TestRetrieve_SportFilterApplied(t *testing.T) {
	store := &fakeStore{responses: []searchCall{
		{results: []vectorstore.SearchResult{golfResult("one"), golfResult("two")}},
	}}
	g := NewGateway(store, GatewayConfig{})

	candidates, err := g.Retrieve(context.Background(), []float32{0.1}, sport.Golf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if len(store.calls) != 1 {
		t.Fatalf("enough filtered results should not trigger a fallback query, got %d calls", len(store.calls))
	}
	if store.calls[0] != "golf" {
		t.Errorf("expected golf filter, got %q", store.calls[0])
	}
}

func TestRetrieve_FallbackAdoptsLargerSet(t *testing.T) {
	store := &fakeStore{responses: []searchCall{
		{results: []vectorstore.SearchResult{golfResult("only one")}},
		{results: []vectorstore.SearchResult{golfResult("a"), golfResult("b"), golfResult("c")}},
	}}
	g := NewGateway(store, GatewayConfig{})

	candidates, err := g.Retrieve(context.Background(), []float32{0.1}, sport.Golf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.calls) != 2 {
		t.Fatalf("expected filtered + fallback queries, got %d calls", len(store.calls))
	}
	if store.calls[1] != "" {
		t.Errorf("fallback query should be unfiltered, got %q", store.calls[1])
	}
	if len(candidates) != 3 {
		t.Errorf("expected the larger fallback set (3), got %d", len(candidates))
	}
}

func TestRetrieve_FallbackKeepsOriginalWhenNotLarger(t *testing.T) {
	store := &fakeStore{responses: []searchCall{
		{results: []vectorstore.SearchResult{golfResult("filtered")}},
		{results: []vectorstore.SearchResult{golfResult("fallback")}},
	}}
	g := NewGateway(store, GatewayConfig{})

	candidates, err := g.Retrieve(context.Background(), []float32{0.1}, sport.Golf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Content != "filtered" {
		t.Errorf("expected the filtered set to win the tie, got %q", candidates[0].Content)
	}
}

func TestRetrieve_PropagatesStoreError(t *testing.T) {
	storeErr := errors.New("qdrant unavailable")
	store := &fakeStore{err: storeErr}
	g := NewGateway(store, GatewayConfig{})

	_, err := g.Retrieve(context.Background(), []float32{0.1}, sport.Golf)
	if !errors.Is(err, storeErr) {
		t.Errorf("expected store error to propagate, got %v", err)
	}
}

func TestToCandidate_MetadataMapping(t *testing.T) {
	tests := []struct {
		name     string
		result   vectorstore.SearchResult
		expected Candidate
	}{
		{
			name: "full metadata",
			result: vectorstore.SearchResult{
				Score: 0.7,
				Metadata: map[string]string{
					"sport":   "Golf",
					"content": "the passage",
					"number":  "13.1",
					"title":   "Putting Greens",
					"path":    "/rules/golfrules/13",
				},
			},
			expected: Candidate{
				Content:    "the passage",
				Sport:      sport.Golf,
				BaseScore:  0.7,
				RuleNumber: "13.1",
				Title:      "Putting Greens",
				Path:       "/rules/golfrules/13",
			},
		},
		{
			name: "legacy text key",
			result: vectorstore.SearchResult{
				Score:    0.4,
				Metadata: map[string]string{"text": "older payload shape"},
			},
			expected: Candidate{
				Content:   "older payload shape",
				Sport:     sport.Unknown,
				BaseScore: 0.4,
			},
		},
		{
			name:     "missing fields",
			result:   vectorstore.SearchResult{Score: 0.2, Metadata: map[string]string{}},
			expected: Candidate{BaseScore: 0.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toCandidate(tt.result); got != tt.expected {
				t.Errorf("toCandidate() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}
