package prompt

import (
	"fmt"
	"strings"

	"github.com/themobileprof/mindguard-be/internal/companion"
	"github.com/themobileprof/mindguard-be/internal/privacy"
	"github.com/themobileprof/mindguard-be/internal/risk"
	"github.com/themobileprof/mindguard-be/pkg/llm"
)

// MaxHistoryWindow is the most prior turns ever sent to the provider
const MaxHistoryWindow = 6

const (
	highRiskDirective   = "⚠️ CRISIS ALERT: User is at HIGH RISK. Prioritize safety, provide immediate crisis resources, and encourage professional help."
	mediumRiskDirective = "⚠️ ELEVATED CONCERN: User may be struggling significantly. Monitor carefully and provide extra support."
	instructionSuffix   = "Respond with empathy, professionalism, and appropriate intervention based on the context above."
)

// Builder constructs prompts for the remote provider
type Builder struct {
	window int
}

// NewBuilder creates a builder that keeps at most window prior turns.
// Values outside 1..MaxHistoryWindow fall back to MaxHistoryWindow.
func NewBuilder(window int) *Builder {
	if window <= 0 || window > MaxHistoryWindow {
		window = MaxHistoryWindow
	}
	return &Builder{window: window}
}

// Window returns the history window in turns
func (b *Builder) Window() int {
	return b.window
}

// BuildMessages returns the system prompt, the most recent history turns and
// the new user message, in that order.
func (b *Builder) BuildMessages(message string, uc *companion.UserContext, tier risk.Tier) []llm.ChatMessage {
	history := b.recentHistory(uc.History())

	messages := make([]llm.ChatMessage, 0, 2+len(history))
	messages = append(messages, llm.ChatMessage{
		Role:    llm.RoleSystem,
		Content: b.BuildSystemPrompt(uc, tier),
	})

	for _, turn := range history {
		if turn.IsUser {
			if turn.Message == "" {
				continue
			}
			messages = append(messages, llm.ChatMessage{Role: llm.RoleUser, Content: privacy.SanitizeForAPI(turn.Message)})
			continue
		}
		if turn.Response == "" {
			continue
		}
		messages = append(messages, llm.ChatMessage{Role: llm.RoleAssistant, Content: turn.Response})
	}

	messages = append(messages, llm.ChatMessage{
		Role:    llm.RoleUser,
		Content: privacy.SanitizeForAPI(message),
	})

	return messages
}

func (b *Builder) recentHistory(history []companion.Turn) []companion.Turn {
	if len(history) > b.window {
		return history[len(history)-b.window:]
	}
	return history
}

// BuildSystemPrompt assembles persona, user context, risk directive and the
// closing instruction.
func (b *Builder) BuildSystemPrompt(uc *companion.UserContext, tier risk.Tier) string {
	var sb strings.Builder
	sb.Grow(len(persona) + 512)

	sb.WriteString(persona)

	if block := userContextBlock(uc); block != "" {
		sb.WriteString("\n\n")
		sb.WriteString(block)
	}

	switch tier {
	case risk.High:
		sb.WriteString("\n\n")
		sb.WriteString(highRiskDirective)
	case risk.Medium:
		sb.WriteString("\n\n")
		sb.WriteString(mediumRiskDirective)
	}

	sb.WriteString("\n\n")
	sb.WriteString(instructionSuffix)

	return sb.String()
}

func userContextBlock(uc *companion.UserContext) string {
	if uc == nil {
		return ""
	}

	var lines []string
	if name := strings.TrimSpace(uc.NameOrEmpty()); name != "" {
		lines = append(lines, fmt.Sprintf("User's name: %s", name))
	}
	if p := strings.TrimSpace(string(uc.Preferred())); p != "" {
		lines = append(lines, fmt.Sprintf("Preferred AI personality: %s MODE", strings.ToUpper(p)))
	}
	if mood := strings.TrimSpace(uc.Mood()); mood != "" {
		lines = append(lines, fmt.Sprintf("Current mood: %s", mood))
	}
	if s := joinNonEmpty(uc.EffectiveStrategies); s != "" {
		lines = append(lines, fmt.Sprintf("Strategies that worked before: %s", s))
	}
	if s := joinNonEmpty(uc.Triggers); s != "" {
		lines = append(lines, fmt.Sprintf("Known triggers: %s", s))
	}

	if len(lines) == 0 {
		return ""
	}
	return "## USER CONTEXT\n" + strings.Join(lines, "\n")
}

func joinNonEmpty(items []string) string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ", ")
}
