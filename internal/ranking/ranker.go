// Package ranking rescores retrieved rule passages with a blend of vector
// similarity, sport affinity, and lexical overlap, and renders the winners
// into a bounded context block for prompt injection.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sportsrules/rulebook/internal/retrieval"
	"github.com/sportsrules/rulebook/internal/sport"
)

// Default scoring parameters. The sport-affinity boost deliberately dwarfs
// the lexical increments so that classification steers the final order even
// when retrieval ran unfiltered.
const (
	DefaultSportBoost      float32 = 0.3
	DefaultLengthBoost     float32 = 0.05
	DefaultLengthThreshold         = 200
	DefaultKeywordBoost    float32 = 0.05
	DefaultScenarioBoost   float32 = 0.4
	DefaultMaxPassages             = 6

	// contextSeparator joins rendered passages in the context block.
	contextSeparator = "\n\n---\n\n"
)

// Config holds the ranker's scoring parameters. Zero values fall back to
// the defaults above.
type Config struct {
	SportBoost      float32 // added when candidate sport equals the detected sport
	LengthBoost     float32 // added for passages longer than LengthThreshold
	LengthThreshold int     // characters
	KeywordBoost    float32 // added per matched question token
	ScenarioBoost   float32 // added on a known disambiguation pattern
	MaxPassages     int     // context block passage cap
}

// ScoredCandidate is a candidate plus its composite relevance score.
type ScoredCandidate struct {
	retrieval.Candidate
	RelevanceScore float32
	KeywordMatches int
}

// Ranked is the ranker output: all candidates scored and sorted, plus the
// rendered context block for the top passages.
type Ranked struct {
	Scored       []ScoredCandidate
	ContextBlock string
}

// scenario describes a known disambiguation pattern: a question phrased one
// way, a sport, and rulebook phrasing that confirms the pairing. A hit gets
// a large bonus independent of what the classifier guessed, so that
// ball-in-water questions surface golf relief rules and ball-over-fence
// questions surface baseball home-run rules.
type scenario struct {
	questionTriggers []string
	sport            sport.Sport
	contentPhrases   []string
}

var scenarios = []scenario{
	{[]string{"water", "pond", "lake"}, sport.Golf, []string{"water hazard", "penalty area"}},
	{[]string{"over the fence", "fence"}, sport.Baseball, []string{"home run"}},
}

// Ranker rescores and re-ranks retrieval candidates.
type Ranker struct {
	cfg     Config
	matcher Matcher
}

// NewRanker creates a ranker with the given config and matching strategy.
// A nil matcher falls back to the production synonym matcher.
func NewRanker(cfg Config, matcher Matcher) *Ranker {
	if cfg.SportBoost == 0 {
		cfg.SportBoost = DefaultSportBoost
	}
	if cfg.LengthBoost == 0 {
		cfg.LengthBoost = DefaultLengthBoost
	}
	if cfg.LengthThreshold == 0 {
		cfg.LengthThreshold = DefaultLengthThreshold
	}
	if cfg.KeywordBoost == 0 {
		cfg.KeywordBoost = DefaultKeywordBoost
	}
	if cfg.ScenarioBoost == 0 {
		cfg.ScenarioBoost = DefaultScenarioBoost
	}
	if cfg.MaxPassages == 0 {
		cfg.MaxPassages = DefaultMaxPassages
	}
	if matcher == nil {
		matcher = NewSynonymMatcher()
	}
	return &Ranker{cfg: cfg, matcher: matcher}
}

// Rank scores every candidate against the question and detected sport,
// sorts descending by relevance (stable, so retrieval order breaks ties),
// and renders the top passages into the context block. All boosts are
// non-negative: RelevanceScore >= BaseScore always holds. Zero candidates
// yield an empty block, not an error.
func (r *Ranker) Rank(candidates []retrieval.Candidate, s sport.Sport, question string) Ranked {
	if len(candidates) == 0 {
		return Ranked{}
	}

	tokens := queryTokens(question)
	questionLower := strings.ToLower(question)

	scored := make([]ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = r.score(c, s, questionLower, tokens)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	return Ranked{
		Scored:       scored,
		ContextBlock: r.render(scored),
	}
}

// score applies each additive boost independently onto the base score.
func (r *Ranker) score(c retrieval.Candidate, s sport.Sport, questionLower string, tokens []string) ScoredCandidate {
	relevance := c.BaseScore
	contentLower := strings.ToLower(c.Content)

	if s != sport.Unknown && c.Sport == s {
		relevance += r.cfg.SportBoost
	}

	if len(c.Content) > r.cfg.LengthThreshold {
		relevance += r.cfg.LengthBoost
	}

	matches := 0
	for _, token := range tokens {
		switch r.matcher.Match(token, contentLower) {
		case MatchExact:
			relevance += r.cfg.KeywordBoost
			matches++
		case MatchPartial:
			relevance += r.cfg.KeywordBoost / 2
			matches++
		}
	}

	for _, sc := range scenarios {
		if c.Sport != sc.sport {
			continue
		}
		if !containsAny(questionLower, sc.questionTriggers) {
			continue
		}
		if containsAny(contentLower, sc.contentPhrases) {
			relevance += r.cfg.ScenarioBoost
			break
		}
	}

	return ScoredCandidate{
		Candidate:      c,
		RelevanceScore: relevance,
		KeywordMatches: matches,
	}
}

// render joins the top passages into the labeled context block. Candidates
// with empty content are dropped after truncation; the first surviving
// passage is the primary result by construction.
func (r *Ranker) render(scored []ScoredCandidate) string {
	top := scored
	if len(top) > r.cfg.MaxPassages {
		top = top[:r.cfg.MaxPassages]
	}

	sections := make([]string, 0, len(top))
	for _, sc := range top {
		content := strings.TrimSpace(sc.Content)
		if content == "" {
			continue
		}
		label := "GENERAL"
		if sc.Sport != sport.Unknown {
			label = strings.ToUpper(string(sc.Sport))
		}
		sections = append(sections,
			fmt.Sprintf("[%s] (Score: %.3f)\n%s", label, sc.RelevanceScore, content))
	}

	return strings.Join(sections, contextSeparator)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
