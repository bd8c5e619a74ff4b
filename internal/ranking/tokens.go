package ranking

import "strings"

// stopWords are question words carrying no retrieval signal.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
		"do", "does", "did", "will", "would", "could", "should", "may", "might", "must",
		"can", "and", "or", "but", "if", "then", "else", "when", "where", "why", "how",
		"what", "which", "who", "whom", "whose", "this", "that", "these", "those",
		"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them",
		"my", "your", "his", "its", "our", "their", "a", "an", "as", "at", "by",
		"for", "from", "in", "into", "of", "on", "to", "with", "about",
	} {
		stopWords[w] = struct{}{}
	}
}

// queryTokens extracts the scoring tokens from a question: punctuation
// stripped, lowercased, split on whitespace, stop-words and tokens under
// three characters dropped.
func queryTokens(question string) []string {
	var sb strings.Builder
	for _, r := range strings.ToLower(question) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			sb.WriteRune(' ')
		}
	}

	fields := strings.Fields(sb.String())
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
