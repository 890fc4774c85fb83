package remote

import (
	"testing"

	"github.com/themobileprof/mindguard-be/internal/companion"
)

func TestAnalyzeReply(t *testing.T) {
	tests := []struct {
		name             string
		text             string
		wantIntervention companion.Intervention
		wantPersonality  companion.Personality
	}{
		{
			name:             "crisis hotline",
			text:             "Please call 988 right now. I understand how much you feel this.",
			wantIntervention: companion.InterventionCrisis,
			wantPersonality:  companion.PersonalityEmpathetic,
		},
		{
			name:             "grounding",
			text:             "Let's ground ourselves. Notice the present moment.",
			wantIntervention: companion.InterventionAnxiety,
			wantPersonality:  companion.PersonalityMindful,
		},
		{
			name:             "small steps",
			text:             "One small step today could be a plan for a short walk.",
			wantIntervention: companion.InterventionDepression,
			wantPersonality:  companion.PersonalityPractical,
		},
		{
			name:             "relationship",
			text:             "Good communication can help. This could be a moment of growth.",
			wantIntervention: companion.InterventionRelationship,
			wantPersonality:  companion.PersonalityWise,
		},
		{
			name:             "nothing recognized",
			text:             "Tell me more.",
			wantIntervention: companion.InterventionGeneral,
			wantPersonality:  companion.PersonalityAdaptive,
		},
		{
			name:             "case insensitive",
			text:             "CRISIS lines are open. BREATHE.",
			wantIntervention: companion.InterventionCrisis,
			wantPersonality:  companion.PersonalityMindful,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intervention, personality := AnalyzeReply(tt.text)
			if intervention != tt.wantIntervention {
				t.Errorf("intervention = %s, want %s", intervention, tt.wantIntervention)
			}
			if personality != tt.wantPersonality {
				t.Errorf("personality = %s, want %s", personality, tt.wantPersonality)
			}
		})
	}
}
