// Package guidance holds the follow-up question and suggested action tables
// attached to every response.
package guidance

import (
	"github.com/themobileprof/mindguard-be/internal/companion"
	"github.com/themobileprof/mindguard-be/internal/risk"
)

var followUps = map[companion.Intervention][]string{
	companion.InterventionCrisis: {
		"Are you in a safe place right now?",
		"Do you have someone you can call for support?",
		"Have you been in contact with a mental health professional?",
	},
	companion.InterventionAnxiety: {
		"What specific situation is triggering this anxiety?",
		"Have you tried any breathing techniques before?",
		"What does your body feel like right now?",
	},
	companion.InterventionDepression: {
		"How long have you been feeling this way?",
		"What usually helps you feel even slightly better?",
		"Are you taking care of your basic needs like sleep and food?",
	},
	companion.InterventionRelationship: {
		"What aspect of this relationship is most challenging?",
		"How do you typically handle conflicts together?",
		"What kind of support feels most needed right now?",
	},
}

var defaultFollowUps = []string{
	"How are you feeling right now?",
	"What would be most helpful to explore?",
	"Is there anything else on your mind?",
}

var tierActions = map[risk.Tier][]string{
	risk.High: {
		"Call crisis line immediately",
		"Go to emergency room",
		"Contact trusted person",
	},
	risk.Medium: {
		"Call crisis hotline",
		"Reach out for support",
		"Practice safety planning",
	},
}

var copingActions = map[companion.Intervention][]string{
	companion.InterventionAnxiety: {
		"Practice 4-7-8 breathing",
		"Try 5-4-3-2-1 grounding",
		"Take a short walk",
	},
	companion.InterventionDepression: {
		"Do one small self-care activity",
		"Reach out to one person",
		"Get some sunlight",
	},
	companion.InterventionRelationship: {
		`Practice "I" statements`,
		"Take time to cool down",
		"Listen actively",
	},
	companion.InterventionWorkStress: {
		"Set one clear boundary",
		"Take a proper break",
		"Write down your top three priorities",
	},
	companion.InterventionAnger: {
		"Take ten slow breaths before responding",
		"Write down what you need right now",
		"Move your body for two minutes",
	},
	companion.InterventionCognitive: {
		"Write down the thought and the evidence for and against it",
		"Pick the smallest possible next step",
		"Ask what you would tell a friend",
	},
	companion.InterventionLoneliness: {
		"Send a short message to one person",
		"Join a group around one of your interests",
		"Spend a few minutes somewhere with other people",
	},
	companion.InterventionEmotionalSupport: {
		"Write in a journal for ten minutes",
		"Take deep breaths",
		"Practice self-compassion",
	},
}

var defaultActions = []string{
	"Take deep breaths",
	"Practice self-compassion",
	"Consider next steps",
}

// FollowUpQuestions returns the follow-up questions for an intervention,
// falling back to general questions for unknown labels. The result is a
// fresh slice the caller may modify.
func FollowUpQuestions(intervention companion.Intervention) []string {
	if qs, ok := followUps[intervention]; ok {
		return clone(qs)
	}
	return clone(defaultFollowUps)
}

// SuggestedActions returns crisis actions for medium and high tiers and
// intervention-specific coping actions otherwise. Never empty.
func SuggestedActions(tier risk.Tier, intervention companion.Intervention) []string {
	if actions, ok := tierActions[tier]; ok {
		return clone(actions)
	}
	if actions, ok := copingActions[intervention]; ok {
		return clone(actions)
	}
	return clone(defaultActions)
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
