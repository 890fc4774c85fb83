package guidance

import (
	"testing"

	"github.com/themobileprof/mindguard-be/internal/companion"
	"github.com/themobileprof/mindguard-be/internal/risk"
)

func TestFollowUpQuestions(t *testing.T) {
	tests := []struct {
		name         string
		intervention companion.Intervention
		wantFirst    string
	}{
		{"crisis", companion.InterventionCrisis, "Are you in a safe place right now?"},
		{"anxiety", companion.InterventionAnxiety, "What specific situation is triggering this anxiety?"},
		{"depression", companion.InterventionDepression, "How long have you been feeling this way?"},
		{"relationship", companion.InterventionRelationship, "What aspect of this relationship is most challenging?"},
		{"unknown falls back to general", companion.Intervention("something_else"), "How are you feeling right now?"},
		{"general", companion.InterventionGeneral, "How are you feeling right now?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FollowUpQuestions(tt.intervention)
			if len(got) != 3 {
				t.Fatalf("expected 3 questions, got %d", len(got))
			}
			if got[0] != tt.wantFirst {
				t.Errorf("expected %q, got %q", tt.wantFirst, got[0])
			}
		})
	}
}

func TestSuggestedActions(t *testing.T) {
	tests := []struct {
		name         string
		tier         risk.Tier
		intervention companion.Intervention
		wantFirst    string
	}{
		{"high overrides intervention", risk.High, companion.InterventionAnxiety, "Call crisis line immediately"},
		{"medium", risk.Medium, companion.InterventionGeneral, "Call crisis hotline"},
		{"low anxiety", risk.Low, companion.InterventionAnxiety, "Practice 4-7-8 breathing"},
		{"low depression", risk.Low, companion.InterventionDepression, "Do one small self-care activity"},
		{"low relationship", risk.Low, companion.InterventionRelationship, `Practice "I" statements`},
		{"low work stress", risk.Low, companion.InterventionWorkStress, "Set one clear boundary"},
		{"low general", risk.Low, companion.InterventionGeneral, "Take deep breaths"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestedActions(tt.tier, tt.intervention)
			if len(got) == 0 {
				t.Fatal("expected non-empty actions")
			}
			if got[0] != tt.wantFirst {
				t.Errorf("expected %q, got %q", tt.wantFirst, got[0])
			}
		})
	}
}

func TestTablesAreNotAliased(t *testing.T) {
	got := FollowUpQuestions(companion.InterventionCrisis)
	got[0] = "mutated"
	if FollowUpQuestions(companion.InterventionCrisis)[0] == "mutated" {
		t.Error("FollowUpQuestions returned shared backing array")
	}

	actions := SuggestedActions(risk.High, companion.InterventionGeneral)
	actions[0] = "mutated"
	if SuggestedActions(risk.High, companion.InterventionGeneral)[0] == "mutated" {
		t.Error("SuggestedActions returned shared backing array")
	}
}
