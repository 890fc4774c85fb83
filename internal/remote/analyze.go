package remote

import (
	"strings"

	"github.com/themobileprof/mindguard-be/internal/companion"
)

// AnalyzeReply infers the intervention and personality of a generated reply
// from its wording.
func AnalyzeReply(text string) (companion.Intervention, companion.Personality) {
	lower := strings.ToLower(text)
	return sniffIntervention(lower), sniffPersonality(lower)
}

func sniffIntervention(lower string) companion.Intervention {
	switch {
	case containsAny(lower, "988", "crisis"):
		return companion.InterventionCrisis
	case containsAny(lower, "breathing", "ground"):
		return companion.InterventionAnxiety
	case containsAny(lower, "small step", "self-care"):
		return companion.InterventionDepression
	case containsAny(lower, "relationship", "communication"):
		return companion.InterventionRelationship
	default:
		return companion.InterventionGeneral
	}
}

func sniffPersonality(lower string) companion.Personality {
	switch {
	case strings.Contains(lower, "feel") && strings.Contains(lower, "understand"):
		return companion.PersonalityEmpathetic
	case strings.Contains(lower, "step") && strings.Contains(lower, "plan"):
		return companion.PersonalityPractical
	case containsAny(lower, "breathe", "present"):
		return companion.PersonalityMindful
	case containsAny(lower, "meaning", "growth"):
		return companion.PersonalityWise
	default:
		return companion.PersonalityAdaptive
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
