// Package sport provides sport detection for free-text rulebook questions.
package sport

import "strings"

// Sport identifies one of the sports covered by the rulebook corpus.
// The zero value Unknown means no sport could be determined.
type Sport string

// Sports with indexed rule content.
const (
	Unknown    Sport = ""
	Golf       Sport = "golf"
	Baseball   Sport = "baseball"
	Football   Sport = "football"
	Basketball Sport = "basketball"
	Tennis     Sport = "tennis"
	Soccer     Sport = "soccer"
	Hockey     Sport = "hockey"
)

// entry pairs a sport with the terminology that suggests it.
type entry struct {
	sport    Sport
	keywords []string
}

// table lists known sports in declaration order. Order matters: explicit
// mentions are checked first-to-last, and keyword-score ties go to the
// earlier entry.
var table = []entry{
	{Golf, []string{"water hazard", "green", "tee", "fairway", "putt", "golf ball", "stroke", "par", "birdie", "eagle", "bunker", "rough", "club"}},
	{Baseball, []string{"pitcher", "batter", "home plate", "base", "inning", "strike", "ball count", "foul ball", "home run", "diamond"}},
	{Football, []string{"touchdown", "field goal", "down", "yard", "quarterback", "snap", "penalty", "endzone"}},
	{Basketball, []string{"basket", "hoop", "court", "dribble", "foul", "free throw", "rebound", "three-pointer"}},
	{Tennis, []string{"serve", "court", "net", "set", "match", "deuce", "advantage", "ace"}},
	{Soccer, []string{"goal", "offside", "penalty kick", "yellow card", "red card", "corner kick", "free kick"}},
	{Hockey, []string{"puck", "icing", "face-off", "power play", "slap shot", "goalie", "rink", "blue line"}},
}

// Classify returns the sport a question most likely concerns, or Unknown.
//
// An explicit mention of a sport's name always wins, regardless of how many
// trigger keywords other sports match. Without an explicit mention the sport
// with the strictly highest keyword-match count is chosen; a zero maximum
// means no sport is detected.
func Classify(question string) Sport {
	q := strings.ToLower(question)

	for _, e := range table {
		if strings.Contains(q, string(e.sport)) {
			return e.sport
		}
	}

	best := Unknown
	bestCount := 0
	for _, e := range table {
		count := 0
		for _, kw := range e.keywords {
			if strings.Contains(q, kw) {
				count++
			}
		}
		if count > bestCount {
			best = e.sport
			bestCount = count
		}
	}

	return best
}

// Parse maps a caller-supplied sport string onto a known Sport.
// Unrecognized values map to Unknown so a bad hint degrades to
// unfiltered retrieval instead of failing the request.
func Parse(s string) Sport {
	candidate := Sport(strings.ToLower(strings.TrimSpace(s)))
	for _, e := range table {
		if e.sport == candidate {
			return e.sport
		}
	}
	return Unknown
}

// All returns every sport with indexed rule content, in table order.
func All() []Sport {
	sports := make([]Sport, len(table))
	for i, e := range table {
		sports[i] = e.sport
	}
	return sports
}
