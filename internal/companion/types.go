// Package companion holds the types shared by the response pipeline.
package companion

import (
	"github.com/themobileprof/mindguard-be/internal/risk"
)

// Intervention labels the therapeutic approach a response takes
type Intervention string

const (
	InterventionCrisis                Intervention = "crisis_intervention"
	InterventionDepression            Intervention = "depression_support"
	InterventionAnxiety               Intervention = "anxiety_management"
	InterventionRelationship          Intervention = "relationship_support"
	InterventionWorkStress            Intervention = "work_stress_management"
	InterventionAnger                 Intervention = "anger_management"
	InterventionCognitive             Intervention = "cognitive_restructuring"
	InterventionLoneliness            Intervention = "connection_building"
	InterventionEmotionalSupport      Intervention = "emotional_support"
	InterventionPositiveReinforcement Intervention = "positive_reinforcement"
	InterventionCheckIn               Intervention = "wellness_check_in"
	InterventionGeneral               Intervention = "general_support"
)

// Personality is the conversational style of a response
type Personality string

const (
	PersonalityEmpathetic Personality = "empathetic"
	PersonalityPractical  Personality = "practical"
	PersonalityMindful    Personality = "mindful"
	PersonalityWise       Personality = "wise"
	PersonalityAdaptive   Personality = "adaptive"
)

// Source records which stage of the router produced a response
type Source string

const (
	SourceRemote    Source = "remote"
	SourcePattern   Source = "pattern"
	SourceSentiment Source = "sentiment"
	SourceHistory   Source = "history"
	SourceDefault   Source = "default"
	SourceFallback  Source = "fallback"
)

// Turn is one prior exchange. A user turn carries Message; an assistant
// turn carries Response.
type Turn struct {
	IsUser   bool   `json:"isUser"`
	Message  string `json:"message,omitempty"`
	Response string `json:"response,omitempty"`
}

// Text returns whichever side of the turn is populated
func (t Turn) Text() string {
	if t.IsUser {
		return t.Message
	}
	return t.Response
}

// UserContext personalizes a response. Every field is optional.
type UserContext struct {
	Name                 *string  `json:"name,omitempty"`
	PreferredPersonality *string  `json:"preferredPersonality,omitempty"`
	CurrentMood          *string  `json:"currentMood,omitempty"`
	EffectiveStrategies  []string `json:"effectiveStrategies,omitempty"`
	Triggers             []string `json:"triggers,omitempty"`
	ConversationHistory  []Turn   `json:"conversationHistory,omitempty"`
}

// NameOrEmpty returns the user's name, or "" when absent
func (c *UserContext) NameOrEmpty() string {
	if c == nil || c.Name == nil {
		return ""
	}
	return *c.Name
}

// Mood returns the current mood, or "" when absent
func (c *UserContext) Mood() string {
	if c == nil || c.CurrentMood == nil {
		return ""
	}
	return *c.CurrentMood
}

// Preferred returns the preferred personality, or "" when absent
func (c *UserContext) Preferred() Personality {
	if c == nil || c.PreferredPersonality == nil {
		return ""
	}
	return Personality(*c.PreferredPersonality)
}

// History returns the conversation history, tolerating a nil context
func (c *UserContext) History() []Turn {
	if c == nil {
		return nil
	}
	return c.ConversationHistory
}

// Metadata describes how a response was produced
type Metadata struct {
	Personality       Personality  `json:"personality"`
	Intervention      Intervention `json:"intervention"`
	RiskLevel         risk.Tier    `json:"riskLevel"`
	FollowUpQuestions []string     `json:"followUpQuestions"`
	SuggestedActions  []string     `json:"suggestedActions"`
	ProcessingTime    float64      `json:"processingTime"`
	Source            Source       `json:"source"`
	Technique         string       `json:"technique,omitempty"`
}

// Result is the reply returned for one user message
type Result struct {
	Response string   `json:"response"`
	Metadata Metadata `json:"metadata"`
}

// String returns a pointer to s, for building optional context fields
func String(s string) *string {
	return &s
}
