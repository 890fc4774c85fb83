// Package sentiment scores free text against a small emotional lexicon.
package sentiment

import (
	"strings"
)

var positiveWords = wordSet(
	"happy", "joy", "love", "excited", "great", "wonderful", "amazing",
	"fantastic", "good", "better", "best", "excellent", "perfect",
	"beautiful", "awesome", "grateful", "thankful", "blessed", "hopeful",
	"optimistic", "confident", "successful", "achievement", "progress",
	"improvement", "victory", "win",
)

var negativeWords = wordSet(
	"sad", "angry", "hate", "terrible", "awful", "bad", "worst", "horrible",
	"depressed", "anxious", "worried", "stress", "panic", "fear", "scared",
	"upset", "frustrated", "disappointed", "hopeless", "worthless",
	"failure", "problem", "difficult", "hard", "struggle", "pain", "hurt",
	"lonely",
)

// Score returns a value in [-1, 1]. Each word is lowercased and compared
// against the lexicon: +1 for a positive hit, -1 for a negative hit. The sum
// is divided by max(hits, words/4) so that a single emotional word in a long
// message carries less weight. Text with no hits scores 0.
func Score(text string) float64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}

	var sum float64
	hits := 0
	for _, w := range words {
		if _, ok := positiveWords[w]; ok {
			sum++
			hits++
		} else if _, ok := negativeWords[w]; ok {
			sum--
			hits++
		}
	}

	if hits == 0 {
		return 0
	}

	denom := float64(hits)
	if quarter := float64(len(words)) / 4; quarter > denom {
		denom = quarter
	}

	return clamp(sum / denom)
}

// Label buckets a score into positive, negative or neutral
func Label(score float64) string {
	switch {
	case score > 0.3:
		return "positive"
	case score < -0.3:
		return "negative"
	default:
		return "neutral"
	}
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
