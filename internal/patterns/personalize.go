package patterns

import (
	"strings"

	"github.com/themobileprof/mindguard-be/internal/companion"
)

const (
	lowMoodAffirmation     = "Sometimes when we're feeling low, even tiny steps count as victories."
	anxiousMoodAffirmation = "When anxiety rises, remember that you can always return to your breath."
)

// Personalize weaves the user's context into a reply: the name after the
// first sentence, a reminder of the first strategy that helped before, and
// with probability 0.3 a one-line affirmation for a low or anxious mood.
func Personalize(text string, uc *companion.UserContext, rnd Rand) string {
	if uc == nil {
		return text
	}

	out := text

	if name := strings.TrimSpace(uc.NameOrEmpty()); name != "" && !strings.Contains(out, name) {
		out = strings.Replace(out, ". ", ", "+name+". ", 1)
	}

	if len(uc.EffectiveStrategies) > 0 {
		if strategy := strings.TrimSpace(uc.EffectiveStrategies[0]); strategy != "" {
			out += "\n\nRemember, " + strategy + " helped you before - might it be worth trying again?"
		}
	}

	switch strings.ToLower(strings.TrimSpace(uc.Mood())) {
	case "low":
		if rnd.Float64() > 0.7 {
			out += "\n\n" + lowMoodAffirmation
		}
	case "anxious":
		if rnd.Float64() > 0.7 {
			out += "\n\n" + anxiousMoodAffirmation
		}
	}

	return out
}

// withName fills the {name} placeholder with ", Name" or nothing
func withName(template string, uc *companion.UserContext) string {
	suffix := ""
	if name := strings.TrimSpace(uc.NameOrEmpty()); name != "" {
		suffix = ", " + name
	}
	return strings.ReplaceAll(template, "{name}", suffix)
}
