package patterns

import (
	"strings"

	"github.com/themobileprof/mindguard-be/internal/companion"
)

const (
	VeryNegativeThreshold = -0.6
	PositiveThreshold     = 0.4

	// historyScanTurns is how far back HistoryCheckIn looks for a theme
	historyScanTurns = 6
	// checkInAfterTurns enables the general wellness check-in
	checkInAfterTurns = 8
)

// Reply is a template-generated response with its labels
type Reply struct {
	Text         string
	Intervention companion.Intervention
	Personality  companion.Personality
	Source       companion.Source
}

// SentimentReply returns an empathetic reply for very negative sentiment and
// a reinforcing one for clearly positive sentiment. Anything in between is
// left to the caller.
func SentimentReply(score float64, uc *companion.UserContext, rnd Rand) (Reply, bool) {
	switch {
	case score < VeryNegativeThreshold:
		text := withName(pick(veryNegativeTemplates, rnd), uc)
		if rnd.Float64() > 0.5 {
			text += "\n\nRemember: " + pick(mentalHealthResources, rnd)
		} else {
			text += "\n\nTry this: " + pick(selfCareStrategies, rnd)
		}
		return Reply{
			Text:         text,
			Intervention: companion.InterventionEmotionalSupport,
			Personality:  companion.PersonalityEmpathetic,
			Source:       companion.SourceSentiment,
		}, true

	case score > PositiveThreshold:
		return Reply{
			Text:         withName(pick(positiveTemplates, rnd), uc),
			Intervention: companion.InterventionPositiveReinforcement,
			Personality:  companion.PersonalityEmpathetic,
			Source:       companion.SourceSentiment,
		}, true
	}

	return Reply{}, false
}

// HistoryCheckIn continues a theme from recent turns: anxiety first, then low
// mood. After a longer conversation it occasionally offers a general
// wellness check-in.
func HistoryCheckIn(uc *companion.UserContext, rnd Rand) (Reply, bool) {
	history := uc.History()
	if len(history) == 0 {
		return Reply{}, false
	}

	recent := history
	if len(recent) > historyScanTurns {
		recent = recent[len(recent)-historyScanTurns:]
	}

	personality := uc.Preferred()
	if personality == "" {
		personality = companion.PersonalityEmpathetic
	}

	if mentions(recent, "anxiety", "anxious") {
		return Reply{
			Text:         "I notice we've been talking about anxiety. How are you feeling now? Are the strategies we discussed helping, or would you like to try something different?\n\nRemember: " + pick(anxietyTips, rnd),
			Intervention: companion.InterventionAnxiety,
			Personality:  personality,
			Source:       companion.SourceHistory,
		}, true
	}

	if mentions(recent, "sad", "depressed") {
		return Reply{
			Text:         "You mentioned feeling down earlier. How are you doing now? Sometimes it helps to check in with ourselves throughout the day.\n\n" + pick(wellnessCheckIns, rnd),
			Intervention: companion.InterventionDepression,
			Personality:  personality,
			Source:       companion.SourceHistory,
		}, true
	}

	if len(history) >= checkInAfterTurns && rnd.Float64() > 0.7 {
		return Reply{
			Text:         "I appreciate you sharing so openly with me. " + pick(wellnessCheckIns, rnd) + "\n\nRemember, I'm here to support you through whatever you're experiencing.",
			Intervention: companion.InterventionCheckIn,
			Personality:  personality,
			Source:       companion.SourceHistory,
		}, true
	}

	return Reply{}, false
}

// AdaptiveDefault is the reply of last resort
func AdaptiveDefault(uc *companion.UserContext, rnd Rand) Reply {
	personality := uc.Preferred()
	if personality == "" {
		personality = companion.PersonalityAdaptive
	}
	return Reply{
		Text:         withName(pick(adaptiveTemplates, rnd), uc),
		Intervention: companion.InterventionGeneral,
		Personality:  personality,
		Source:       companion.SourceDefault,
	}
}

func mentions(turns []companion.Turn, words ...string) bool {
	for _, t := range turns {
		text := strings.ToLower(t.Text())
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
	}
	return false
}
