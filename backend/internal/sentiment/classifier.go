package sentiment

import "strings"

// Label is the sentiment classification of a piece of text
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Curated lexicons. Tokens are matched verbatim after lowercasing; there is
// no stemming, negation handling, or phrase matching.
var positiveWords = map[string]struct{}{
	"good":      {},
	"great":     {},
	"awesome":   {},
	"excellent": {},
	"happy":     {},
	"love":      {},
	"wonderful": {},
	"amazing":   {},
}

var negativeWords = map[string]struct{}{
	"bad":      {},
	"terrible": {},
	"awful":    {},
	"hate":     {},
	"sad":      {},
	"angry":    {},
	"poor":     {},
}

// Classify scores text by counting lexicon hits (with repetition) among its
// lowercase whitespace-delimited tokens. A strict majority of positive hits
// yields Positive, a strict majority of negative hits yields Negative, and
// ties, including no hits at all, yield Neutral.
func Classify(text string) Label {
	posCount := 0
	negCount := 0

	for _, word := range strings.Fields(strings.ToLower(text)) {
		if _, ok := positiveWords[word]; ok {
			posCount++
		}
		if _, ok := negativeWords[word]; ok {
			negCount++
		}
	}

	switch {
	case posCount > negCount:
		return Positive
	case negCount > posCount:
		return Negative
	default:
		return Neutral
	}
}
