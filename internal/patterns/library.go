// Package patterns is the local response library: an ordered set of regex
// rules, each carrying a pool of CBT-style replies.
package patterns

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/themobileprof/mindguard-be/internal/companion"
	"github.com/themobileprof/mindguard-be/internal/guidance"
	"github.com/themobileprof/mindguard-be/internal/risk"
)

var apostrophes = strings.NewReplacer("’", "'", "‘", "'")

// Rule maps a trigger to a pool of candidate replies
type Rule struct {
	Intervention companion.Intervention
	Technique    string
	Personality  companion.Personality
	Trigger      *regexp.Regexp

	// Responses is the pool used when no tier-specific pool applies
	Responses []string
	// Tiered overrides Responses for the given risk tier
	Tiered map[risk.Tier][]string

	// Tips are coping strategies appended after the reply, prefixed by TipLabel
	Tips     []string
	TipLabel string

	// FollowUps and Actions replace the shared guidance tables when set
	FollowUps []string
	Actions   []string

	// FixedPersonality ignores the user's preferred personality
	FixedPersonality bool
}

// Pool returns the candidate replies for tier
func (r *Rule) Pool(tier risk.Tier) []string {
	if pool, ok := r.Tiered[tier]; ok && len(pool) > 0 {
		return pool
	}
	return r.Responses
}

// Pick selects one reply uniformly from the pool for tier
func (r *Rule) Pick(tier risk.Tier, rnd Rand) string {
	return pick(r.Pool(tier), rnd)
}

// PersonalityFor returns the user's preferred personality when the rule allows it
func (r *Rule) PersonalityFor(uc *companion.UserContext) companion.Personality {
	if !r.FixedPersonality {
		if p := uc.Preferred(); p != "" {
			return p
		}
	}
	return r.Personality
}

// AppendTip adds one coping tip with probability 0.4
func (r *Rule) AppendTip(text string, rnd Rand) string {
	if len(r.Tips) > 0 && rnd.Float64() > 0.6 {
		return text + "\n\n" + r.TipLabel + ": " + pick(r.Tips, rnd)
	}
	return text
}

// FollowUpQuestions returns the rule's own questions, or the shared ones for
// its intervention.
func (r *Rule) FollowUpQuestions() []string {
	if len(r.FollowUps) > 0 {
		return slices.Clone(r.FollowUps)
	}
	return guidance.FollowUpQuestions(r.Intervention)
}

// SuggestedActions returns the crisis actions from medium tier up, otherwise
// the rule's own actions or the shared coping actions.
func (r *Rule) SuggestedActions(tier risk.Tier) []string {
	if tier < risk.Medium && len(r.Actions) > 0 {
		return slices.Clone(r.Actions)
	}
	return guidance.SuggestedActions(tier, r.Intervention)
}

// Library holds the rules in priority order
type Library struct {
	rules []*Rule
}

// NewLibrary returns the built-in rule set. It panics if a rule has an empty
// pool, the same way regexp.MustCompile panics on a bad pattern.
func NewLibrary() *Library {
	lib, err := newLibrary(defaultRules())
	if err != nil {
		panic(err)
	}
	return lib
}

func newLibrary(rules []*Rule) (*Library, error) {
	for _, r := range rules {
		if r.Trigger == nil {
			return nil, fmt.Errorf("rule %s: missing trigger", r.Intervention)
		}
		if len(r.Responses) == 0 {
			return nil, fmt.Errorf("rule %s: empty response pool", r.Intervention)
		}
		for tier, pool := range r.Tiered {
			if len(pool) == 0 {
				return nil, fmt.Errorf("rule %s: empty %s pool", r.Intervention, tier)
			}
		}
	}
	return &Library{rules: rules}, nil
}

// Select returns the first rule whose trigger matches message
func (l *Library) Select(message string) (*Rule, bool) {
	text := apostrophes.Replace(strings.ToLower(message))
	for _, r := range l.rules {
		if r.Trigger.MatchString(text) {
			return r, true
		}
	}
	return nil, false
}

func defaultRules() []*Rule {
	return []*Rule{
		{
			Intervention:     companion.InterventionCrisis,
			Technique:        "Crisis Intervention",
			Personality:      companion.PersonalityEmpathetic,
			FixedPersonality: true,
			Trigger:          regexp.MustCompile(`\b(suicid(e|al)|kill(ing)? myself|end(ing)? it all|want(s|ed)? to die|harm(ing)? myself|hurt(ing)? myself)\b`),
			Responses:        crisisLow,
			Tiered: map[risk.Tier][]string{
				risk.High:   crisisHigh,
				risk.Medium: crisisMedium,
				risk.Low:    crisisLow,
			},
			FollowUps: []string{
				"Are you in a safe place right now?",
				"Do you have someone you can call?",
				"Have you contacted a mental health professional recently?",
			},
			Actions: []string{
				"Call 988 immediately",
				"Go to nearest emergency room",
				"Contact trusted friend or family member",
			},
		},
		{
			Intervention: companion.InterventionDepression,
			Technique:    "Depression Support",
			Personality:  companion.PersonalityEmpathetic,
			Trigger:      regexp.MustCompile(`\b(sad|depressed|down|hopeless|worthless|empty|numb|no energy|can'?t get out of bed)\b`),
			Responses:    depressionResponses,
			Tips:         depressionTips,
			TipLabel:     "Gentle reminder",
			FollowUps: []string{
				"How long have you been feeling this way?",
				"What usually helps you feel even slightly better?",
				"Have you been taking care of your basic needs?",
			},
			Actions: []string{
				"Try one small self-care activity",
				"Reach out to one supportive person",
				"Consider professional help if persistent",
			},
		},
		{
			Intervention: companion.InterventionAnxiety,
			Technique:    "Anxiety Management",
			Personality:  companion.PersonalityMindful,
			Trigger:      regexp.MustCompile(`\b(anxiety|anxious|worried|stress(ed|ful)?|panic(king)?|nervous|overwhelmed|can'?t breathe)\b`),
			Responses:    anxietyResponses,
			Tips:         anxietyTips,
			TipLabel:     "Quick strategy",
			FollowUps: []string{
				"What specific situation is triggering this anxiety?",
				"Have you tried any grounding techniques?",
				"What does your body feel like right now?",
			},
			Actions: []string{
				"Practice 4-7-8 breathing",
				"Try 5-4-3-2-1 grounding technique",
				"Take a short walk if possible",
			},
		},
		{
			Intervention: companion.InterventionRelationship,
			Technique:    "Relationship Support",
			Personality:  companion.PersonalityPractical,
			Trigger:      regexp.MustCompile(`\b(relationship|partner|boyfriend|girlfriend|marriage|divorce|breakup|break up|fight|argument)\b`),
			Responses:    relationshipResponses,
			FollowUps: []string{
				"What aspect of this relationship is most challenging?",
				"How do you typically handle conflicts?",
				"What kind of support do you need right now?",
			},
			Actions: []string{
				`Practice "I" statements`,
				"Take time to cool down before responding",
				"Consider couples counseling if appropriate",
			},
		},
		{
			Intervention: companion.InterventionWorkStress,
			Technique:    "Work Stress Management",
			Personality:  companion.PersonalityPractical,
			Trigger:      regexp.MustCompile(`\b(work|job|boss|career|deadline|fired|quit|colleague|workplace|burnout|overworked)\b`),
			Responses:    workResponses,
			Tips:         stressTips,
			TipLabel:     "Try this",
			FollowUps: []string{
				"What specific aspect of work is most stressful?",
				"Do you have support at work?",
				"How is this affecting your life outside work?",
			},
			Actions: []string{
				"Set boundaries with work hours",
				"Take regular breaks",
				"Consider talking to HR or supervisor",
			},
		},
		{
			Intervention: companion.InterventionAnger,
			Technique:    "Anger Management",
			Personality:  companion.PersonalityPractical,
			Trigger:      regexp.MustCompile(`\b(angry|frustrated|mad|irritated|furious|rage)\b`),
			Responses:    angerResponses,
			Tips:         angerTips,
			TipLabel:     "Try this",
			FollowUps: []string{
				"What triggered this anger?",
				"How do you usually handle anger? What works and what doesn't?",
				"What would a positive outcome look like in this situation?",
			},
		},
		{
			Intervention: companion.InterventionCognitive,
			Technique:    "Cognitive Restructuring",
			Personality:  companion.PersonalityWise,
			Trigger:      regexp.MustCompile(`\b(can'?t|impossible|won'?t work|give up|pointless)\b`),
			Responses:    cognitiveResponses,
			FollowUps: []string{
				"What specifically feels impossible right now?",
				"What resources or support do you have available?",
				"What's the smallest possible step you could take?",
			},
		},
		{
			Intervention: companion.InterventionLoneliness,
			Technique:    "Connection Building",
			Personality:  companion.PersonalityEmpathetic,
			Trigger:      regexp.MustCompile(`\b(lonely|alone|isolated|no friends|nobody)\b`),
			Responses:    lonelinessResponses,
			FollowUps: []string{
				"When did you last feel truly connected to someone?",
				"What interests or activities make you feel most like yourself?",
				"Is there anyone in your life you've lost touch with that you could reconnect with?",
			},
		},
	}
}
