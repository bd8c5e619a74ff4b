package ranking

import "strings"

// Strength classifies how well a question token matched passage content.
type Strength int

const (
	// MatchNone means the token was not found in the content.
	MatchNone Strength = iota

	// MatchPartial means the token overlapped a content word as a substring.
	MatchPartial

	// MatchExact means the token appeared verbatim or via a synonym phrase.
	MatchExact
)

// Matcher decides whether a question token is present in passage content.
// It is a swappable strategy: the production implementation is a lightweight
// synonym-and-substring heuristic that a stemmer or lemmatizer could replace
// without touching the scoring composition in Ranker.
type Matcher interface {
	Match(token, content string) Strength
}

// termMappings maps common question words onto domain phrases that express
// the same concept in rulebook language. Lookups are exact on the token;
// the mapped phrases are matched as substrings of the passage content.
var termMappings = map[string][]string{
	"water":   {"water hazard", "pond", "lake", "stream", "river", "lateral water hazard"},
	"ball":    {"golf ball", "ball in water", "lost ball"},
	"hit":     {"stroke", "shot", "play"},
	"penalty": {"penalty stroke", "drop", "relief"},
	"goal":    {"field goal", "touchdown", "scoring", "endzone", "goalpost"},
	"field":   {"field goal", "playing field", "football field", "gridiron"},
	"down":    {"first down", "second down", "third down", "fourth down", "downs"},
	"player":  {"players", "team member", "athlete"},
	"score":   {"scoring", "points", "touchdown", "field goal"},
	"time":    {"clock", "timer", "timeout", "quarter", "period"},
	"pass":    {"passing", "throw", "forward pass", "incomplete"},
	"run":     {"running", "rush", "carry", "ground game"},
}

// SynonymMatcher is the production Matcher. It tries verbatim containment,
// then the domain synonym table, then partial substring overlap against
// individual content words.
type SynonymMatcher struct{}

// NewSynonymMatcher creates the default synonym/fuzzy matcher.
func NewSynonymMatcher() *SynonymMatcher {
	return &SynonymMatcher{}
}

// Match reports the strongest way token occurs in content.
// Both arguments are expected to be lowercased by the caller.
func (m *SynonymMatcher) Match(token, content string) Strength {
	if strings.Contains(content, token) {
		return MatchExact
	}

	for _, phrase := range termMappings[token] {
		if strings.Contains(content, phrase) {
			return MatchExact
		}
	}

	if m.partialMatch(token, content) {
		return MatchPartial
	}

	return MatchNone
}

// partialMatch checks substring overlap in either direction between the
// token and each cleaned content word. Tokens shorter than 4 characters are
// skipped: they produce too many accidental overlaps to be a useful signal.
func (m *SynonymMatcher) partialMatch(token, content string) bool {
	if len(token) < 4 {
		return false
	}

	for _, word := range strings.Fields(content) {
		clean := cleanWord(word)
		if len(clean) <= 3 {
			continue
		}
		if strings.Contains(clean, token) || strings.Contains(token, clean) {
			return true
		}
	}
	return false
}

// cleanWord strips non-alphanumeric runes and lowercases.
func cleanWord(word string) string {
	var sb strings.Builder
	for _, r := range word {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			sb.WriteRune(r)
		} else if r >= 'A' && r <= 'Z' {
			sb.WriteRune(r + ('a' - 'A'))
		}
	}
	return sb.String()
}

// Ensure SynonymMatcher implements Matcher.
var _ Matcher = (*SynonymMatcher)(nil)
