package ranking

import (
	"reflect"
	"strings"
	"testing"

	"github.com/sportsrules/rulebook/internal/retrieval"
	"github.com/sportsrules/rulebook/internal/sport"
)

func newTestRanker() *Ranker {
	return NewRanker(Config{}, NewSynonymMatcher())
}

func TestRank_EmptyInput(t *testing.T) {
	r := newTestRanker()

	ranked := r.Rank(nil, sport.Golf, "any question")
	if ranked.ContextBlock != "" {
		t.Errorf("expected empty context block, got %q", ranked.ContextBlock)
	}
	if len(ranked.Scored) != 0 {
		t.Errorf("expected no scored candidates, got %d", len(ranked.Scored))
	}
}

func TestRank_BoostsAreNonNegative(t *testing.T) {
	r := newTestRanker()

	candidates := []retrieval.Candidate{
		{Content: "A lost ball incurs a penalty stroke.", Sport: sport.Golf, BaseScore: 0.8},
		{Content: "The strike zone extends over home plate.", Sport: sport.Baseball, BaseScore: 0.4},
		{Content: "", Sport: sport.Unknown, BaseScore: 0.1},
	}

	ranked := r.Rank(candidates, sport.Golf, "What is the penalty for a lost ball in the water?")

	for i, sc := range ranked.Scored {
		if sc.RelevanceScore < sc.BaseScore {
			t.Errorf("candidate %d: relevance %f below base %f", i, sc.RelevanceScore, sc.BaseScore)
		}
	}
}

func TestRank_Idempotent(t *testing.T) {
	r := newTestRanker()

	candidates := []retrieval.Candidate{
		{Content: "A lost ball incurs a penalty stroke.", Sport: sport.Golf, BaseScore: 0.5},
		{Content: "A foul ball is not a strike on the third strike.", Sport: sport.Baseball, BaseScore: 0.6},
	}
	question := "What is the penalty for a lost ball?"

	first := r.Rank(candidates, sport.Golf, question)
	second := r.Rank(candidates, sport.Golf, question)

	if !reflect.DeepEqual(first, second) {
		t.Error("ranking the same input twice produced different results")
	}
}

func TestRank_SportAffinityWinsTies(t *testing.T) {
	r := newTestRanker()

	// Identical base score and content; only the sport label differs.
	content := "The ruling depends on where the ball last crossed."
	candidates := []retrieval.Candidate{
		{Content: content, Sport: sport.Baseball, BaseScore: 0.5},
		{Content: content, Sport: sport.Golf, BaseScore: 0.5},
	}

	ranked := r.Rank(candidates, sport.Golf, "What is the ruling?")

	if ranked.Scored[0].Sport != sport.Golf {
		t.Errorf("expected golf candidate first, got %q", ranked.Scored[0].Sport)
	}
	if ranked.Scored[0].RelevanceScore <= ranked.Scored[1].RelevanceScore {
		t.Error("expected sport-affinity boost to strictly increase the score")
	}
}

func TestRank_KeywordOverlapRaisesScore(t *testing.T) {
	r := newTestRanker()

	candidates := []retrieval.Candidate{
		{Content: "Players must keep pace with the group ahead.", Sport: sport.Unknown, BaseScore: 0.5},
		{Content: "A lost ball incurs a penalty stroke.", Sport: sport.Unknown, BaseScore: 0.5},
	}

	ranked := r.Rank(candidates, sport.Unknown, "What is the penalty for a lost ball?")

	if ranked.Scored[0].Content != candidates[1].Content {
		t.Errorf("expected keyword-matching candidate first, got %q", ranked.Scored[0].Content)
	}
	if ranked.Scored[0].KeywordMatches == 0 {
		t.Error("expected keyword matches to be counted")
	}
	if ranked.Scored[0].RelevanceScore <= ranked.Scored[1].RelevanceScore {
		t.Error("expected strictly higher score for token overlap")
	}
}

func TestRank_StableOrderOnEqualScores(t *testing.T) {
	r := newTestRanker()

	content := "Unrelated text with no question terms."
	candidates := []retrieval.Candidate{
		{Content: content, Sport: sport.Unknown, BaseScore: 0.5, RuleNumber: "1"},
		{Content: content, Sport: sport.Unknown, BaseScore: 0.5, RuleNumber: "2"},
		{Content: content, Sport: sport.Unknown, BaseScore: 0.5, RuleNumber: "3"},
	}

	ranked := r.Rank(candidates, sport.Unknown, "zzz qqq")

	for i, sc := range ranked.Scored {
		if sc.RuleNumber != candidates[i].RuleNumber {
			t.Errorf("position %d: expected rule %s, got %s", i, candidates[i].RuleNumber, sc.RuleNumber)
		}
	}
}

func TestRank_LengthBoost(t *testing.T) {
	r := newTestRanker()

	long := strings.Repeat("detailed rule explanation ", 10) // > 200 chars
	candidates := []retrieval.Candidate{
		{Content: "short", Sport: sport.Unknown, BaseScore: 0.5},
		{Content: long, Sport: sport.Unknown, BaseScore: 0.5},
	}

	ranked := r.Rank(candidates, sport.Unknown, "zzz")

	if ranked.Scored[0].Content != long {
		t.Error("expected the longer passage to rank first")
	}
}

func TestRank_ScenarioBoost(t *testing.T) {
	r := newTestRanker()

	candidates := []retrieval.Candidate{
		{Content: "Rules about teeing order on the first hole.", Sport: sport.Golf, BaseScore: 0.5},
		{Content: "Relief options when the ball is in a water hazard.", Sport: sport.Golf, BaseScore: 0.5},
	}

	ranked := r.Rank(candidates, sport.Unknown, "The ball went into the pond, now what?")

	if !strings.Contains(ranked.Scored[0].Content, "water hazard") {
		t.Errorf("expected water-hazard passage first, got %q", ranked.Scored[0].Content)
	}
	diff := ranked.Scored[0].RelevanceScore - ranked.Scored[1].RelevanceScore
	if diff < DefaultScenarioBoost/2 {
		t.Errorf("expected a large scenario bonus, score difference was %f", diff)
	}
}

func TestRank_TruncatesToMaxPassages(t *testing.T) {
	r := NewRanker(Config{MaxPassages: 2}, NewSynonymMatcher())

	candidates := []retrieval.Candidate{
		{Content: "first passage", Sport: sport.Unknown, BaseScore: 0.9},
		{Content: "second passage", Sport: sport.Unknown, BaseScore: 0.8},
		{Content: "third passage", Sport: sport.Unknown, BaseScore: 0.7},
	}

	ranked := r.Rank(candidates, sport.Unknown, "zzz")

	if strings.Contains(ranked.ContextBlock, "third passage") {
		t.Error("context block should not contain passages beyond the cap")
	}
	if got := strings.Count(ranked.ContextBlock, contextSeparator); got != 1 {
		t.Errorf("expected 1 separator for 2 passages, got %d", got)
	}
	// Scored keeps the full list for diagnostics.
	if len(ranked.Scored) != 3 {
		t.Errorf("expected all 3 candidates scored, got %d", len(ranked.Scored))
	}
}

func TestRank_DiscardsEmptyContent(t *testing.T) {
	r := newTestRanker()

	candidates := []retrieval.Candidate{
		{Content: "", Sport: sport.Golf, BaseScore: 0.9},
		{Content: "   ", Sport: sport.Golf, BaseScore: 0.2},
	}

	ranked := r.Rank(candidates, sport.Golf, "anything")
	if strings.TrimSpace(ranked.ContextBlock) != "" {
		t.Errorf("expected empty context block, got %q", ranked.ContextBlock)
	}
}

func TestRank_ContextBlockFormat(t *testing.T) {
	r := newTestRanker()

	candidates := []retrieval.Candidate{
		{Content: "Relief options when the ball is in a water hazard.", Sport: sport.Golf, BaseScore: 0.5},
		{Content: "General etiquette for all players.", Sport: sport.Unknown, BaseScore: 0.3},
	}

	ranked := r.Rank(candidates, sport.Golf, "water hazard relief")

	if !strings.HasPrefix(ranked.ContextBlock, "[GOLF] (Score: ") {
		t.Errorf("unexpected block prefix: %q", ranked.ContextBlock)
	}
	if !strings.Contains(ranked.ContextBlock, "[GENERAL] (Score: ") {
		t.Error("expected unlabeled passage to render as GENERAL")
	}
	if !strings.Contains(ranked.ContextBlock, contextSeparator) {
		t.Error("expected passages to be separated by the fixed delimiter")
	}
}
