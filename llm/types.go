// Package llm provides shared data models for LLM providers.
package llm

import (
	"fmt"
	"strings"
)

// ChatMessage represents a chat message with role and content.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemMessage creates a system message.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: "system", Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: "user", Content: content}
}

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: "assistant", Content: content}
}

// ThinkingMode controls how much reasoning budget an extended-thinking
// model is given for one call.
type ThinkingMode string

const (
	ThinkingMinimal ThinkingMode = "minimal"
	ThinkingLow     ThinkingMode = "low"
	ThinkingMedium  ThinkingMode = "medium"
	ThinkingHigh    ThinkingMode = "high"
	ThinkingMax     ThinkingMode = "max"
)

// ParseThinkingMode parses a thinking mode from string (case-insensitive).
// Empty input returns ThinkingMedium.
func ParseThinkingMode(s string) (ThinkingMode, error) {
	switch strings.ToLower(s) {
	case "":
		return ThinkingMedium, nil
	case "minimal":
		return ThinkingMinimal, nil
	case "low":
		return ThinkingLow, nil
	case "medium":
		return ThinkingMedium, nil
	case "high":
		return ThinkingHigh, nil
	case "max":
		return ThinkingMax, nil
	default:
		return "", fmt.Errorf("unknown thinking mode: %q", s)
	}
}

// BudgetTokens maps the mode to a thinking-token budget as a fraction of
// the model's maximum thinking capacity.
func (m ThinkingMode) BudgetTokens(maxThinkingTokens int) int {
	switch m {
	case ThinkingMinimal:
		return maxThinkingTokens / 200 // 0.5%
	case ThinkingLow:
		return maxThinkingTokens / 12 // ~8%
	case ThinkingMedium:
		return maxThinkingTokens / 3 // ~33%
	case ThinkingHigh:
		return maxThinkingTokens * 2 / 3 // ~67%
	case ThinkingMax:
		return maxThinkingTokens
	default:
		return maxThinkingTokens / 3
	}
}

// GenerationRequest is the provider-neutral request for one completion.
type GenerationRequest struct {
	// Model is the canonical model name; it must be in the provider's
	// capability catalog.
	Model string

	Messages     []ChatMessage
	SystemPrompt string

	// Temperature is applied only when the model supports it.
	Temperature float64

	// MaxOutputTokens caps the completion; 0 means the model default.
	MaxOutputTokens int

	// ThinkingMode is honored only for extended-thinking models.
	ThinkingMode ThinkingMode

	// Images are absolute paths to image files attached to the request.
	Images []string

	// JSONMode asks the model for a JSON object response when supported.
	JSONMode bool
}

// GenerationResult is the normalized response shared by all providers.
type GenerationResult struct {
	Content      string
	FinishReason string
	InputTokens  int
	OutputTokens int
	ModelName    string
	Provider     ProviderType
}

// TotalTokens returns input plus output tokens.
func (r GenerationResult) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}
