package risk

import (
	"regexp"
	"strings"
)

// Tier is the crisis severity assigned to a single message. Tiers are
// ordered: Low < Medium < High.
type Tier int

const (
	Low Tier = iota
	Medium
	High
)

func (t Tier) String() string {
	switch t {
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "low"
	}
}

// MarshalText encodes the tier as "low", "medium" or "high".
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts the lowercase tier names; anything else decodes to Low.
func (t *Tier) UnmarshalText(b []byte) error {
	*t = ParseTier(string(b))
	return nil
}

// ParseTier maps a tier name to a Tier, defaulting to Low
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medium":
		return Medium
	case "high":
		return High
	default:
		return Low
	}
}

// AtLeast reports whether t is as severe as other
func (t Tier) AtLeast(other Tier) bool {
	return t >= other
}

// NegativeSentimentThreshold is the score below which an otherwise
// unmatched message is escalated to Medium.
const NegativeSentimentThreshold = -0.7

// Classifier performs rule-based crisis risk classification
type Classifier struct {
	crisisPatterns    []*regexp.Regexp
	immediacyPatterns []*regexp.Regexp
	mediumPatterns    []*regexp.Regexp
	spaceNormalizer   *regexp.Regexp
}

// NewClassifier creates a new risk classifier
func NewClassifier() *Classifier {
	return &Classifier{
		spaceNormalizer: regexp.MustCompile(`\s+`),
		// Explicit suicidal or self-harm intent
		crisisPatterns: compilePatterns([]string{
			`\bsuicid(e|al)\b`,
			`\bkill(ing)? myself\b`,
			`\bend(ing)? it all\b`,
			`\bend(ing)? my life\b`,
			`\btake my (own )?life\b`,
			`\b(want(s|ed)?|plan(ning)?|going|ready|wish(ing)?) to die\b`,
			`\bharm(ing)? myself\b`,
			`\bhurt(ing)? myself\b`,
			`\bno point (in )?living\b`,
			`\bcan'?t go on\b`,
		}),
		// Time-bound, method-bound or readiness language
		immediacyPatterns: compilePatterns([]string{
			`\b(tonight|today|right now|this (morning|afternoon|evening|week)|tomorrow)\b`,
			`\b(plan(ning)? to|ready to|going to|about to|decided to)\b`,
			`\b(have|got) a plan\b`,
			`\b(pills|overdose|bridge|gun|rope|knife|razor|jump)\b`,
			`\b(goodbye|final (note|letter)|last (night|day))\b`,
		}),
		// Hopelessness and self-harm ideation without immediacy
		mediumPatterns: compilePatterns([]string{
			`\bhopeless(ness)?\b`,
			`\bworthless\b`,
			`\bno point\b`,
			`\bgive up\b`,
			`\bgiving up\b`,
			`\bself[- ]harm\b`,
			`\bcutting myself\b`,
			`\bno reason to live\b`,
			`\bbetter off without me\b`,
			`\bcan(no|')?t go on\b`,
		}),
	}
}

// Classify assigns a risk tier to message. sentiment may be nil when no
// score is available.
func (c *Classifier) Classify(message string, sentiment *float64) Tier {
	normalized := c.normalizeText(message)

	if normalized != "" {
		if c.matchesPatterns(normalized, c.crisisPatterns) {
			if c.matchesPatterns(normalized, c.immediacyPatterns) {
				return High
			}
			return Medium
		}

		if c.matchesPatterns(normalized, c.mediumPatterns) {
			return Medium
		}
	}

	if sentiment != nil && *sentiment < NegativeSentimentThreshold {
		return Medium
	}

	return Low
}

// HasCrisisLanguage reports whether message contains explicit crisis intent
func (c *Classifier) HasCrisisLanguage(message string) bool {
	return c.matchesPatterns(c.normalizeText(message), c.crisisPatterns)
}

// normalizeText lowercases, folds typographic apostrophes and collapses whitespace
func (c *Classifier) normalizeText(input string) string {
	text := strings.ToLower(input)
	text = strings.NewReplacer("’", "'", "‘", "'").Replace(text)
	text = strings.TrimSpace(text)
	return c.spaceNormalizer.ReplaceAllString(text, " ")
}

func (c *Classifier) matchesPatterns(text string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}
