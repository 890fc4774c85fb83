package fallback

import (
	"github.com/themobileprof/mindguard-be/internal/companion"
	"github.com/themobileprof/mindguard-be/internal/guidance"
	"github.com/themobileprof/mindguard-be/internal/risk"
)

var tierResponses = map[risk.Tier]string{
	risk.High:   "I'm very concerned about you right now. Please call 988 (Suicide Prevention Lifeline) or go to your nearest emergency room immediately. You don't have to face this alone.",
	risk.Medium: "I can hear that you're going through a really difficult time. Please consider reaching out to the Crisis Text Line (text HOME to 741741) or calling 988 for support.",
	risk.Low:    "I'm here to support you through whatever you're experiencing. What would be most helpful for you right now - talking through your feelings, exploring some strategies, or just having someone listen?",
}

// ForTier returns the deterministic response used when the remote provider
// cannot be reached. It depends only on the tier.
func ForTier(tier risk.Tier) companion.Result {
	text, ok := tierResponses[tier]
	if !ok {
		tier = risk.Low
		text = tierResponses[risk.Low]
	}

	intervention := companion.InterventionGeneral
	if tier.AtLeast(risk.Medium) {
		intervention = companion.InterventionCrisis
	}

	return companion.Result{
		Response: text,
		Metadata: companion.Metadata{
			Personality:       companion.PersonalityEmpathetic,
			Intervention:      intervention,
			RiskLevel:         tier,
			FollowUpQuestions: guidance.FollowUpQuestions(intervention),
			SuggestedActions:  guidance.SuggestedActions(tier, intervention),
			ProcessingTime:    0,
			Source:            companion.SourceFallback,
		},
	}
}

// IsEmergency reports whether the tier calls for emergency resources
func IsEmergency(tier risk.Tier) bool {
	return tier == risk.High
}
