package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Label
	}{
		{"positive majority", "what a great and wonderful day", Positive},
		{"negative majority", "terrible awful service", Negative},
		{"empty text", "", Neutral},
		{"no lexicon hits", "the quick brown fox", Neutral},
		{"tie is neutral", "love hate", Neutral},
		{"repetition counted", "bad bad bad love", Negative},
		{"case insensitive", "LOVE this AMAZING view", Positive},
		{"attached punctuation misses, bare token hits", "love, but still great", Positive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassify_PunctuationBreaksMatch(t *testing.T) {
	// No tokenization beyond whitespace: attached punctuation defeats the
	// lexicon lookup entirely
	assert.Equal(t, Neutral, Classify("love, hate!"))
}

func TestClassify_Deterministic(t *testing.T) {
	text := "happy happy sad"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
	assert.Equal(t, Positive, first)
}
