// Model capability descriptors.
//
// A ModelCapability is the immutable metadata record for one model:
// context window, output cap, feature flags, intelligence rank, and the
// alias set used for shorthand resolution ("pro" -> "gemini-2.5-pro").

package llm

import (
	"fmt"
	"strings"
)

// ProviderType identifies a provider backend.
type ProviderType int

const (
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini ProviderType = iota
	// ProviderOpenAI is the OpenAI provider.
	ProviderOpenAI
	// ProviderAnthropic is the Anthropic provider (Claude models).
	ProviderAnthropic
	// ProviderXAI is the X.AI provider (GROK models).
	ProviderXAI
	// ProviderOpenRouter is the OpenRouter aggregator.
	ProviderOpenRouter
)

// String returns the string representation of the provider type.
func (p ProviderType) String() string {
	switch p {
	case ProviderGemini:
		return "gemini"
	case ProviderOpenAI:
		return "openai"
	case ProviderAnthropic:
		return "anthropic"
	case ProviderXAI:
		return "xai"
	case ProviderOpenRouter:
		return "openrouter"
	default:
		return "unknown"
	}
}

// EnvVar returns the environment variable holding this provider's API key.
func (p ProviderType) EnvVar() string {
	switch p {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderXAI:
		return "XAI_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	default:
		return ""
	}
}

// ParseProviderType parses a provider from string (case-insensitive).
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToLower(s) {
	case "gemini", "google":
		return ProviderGemini, nil
	case "openai", "gpt":
		return ProviderOpenAI, nil
	case "anthropic", "claude":
		return ProviderAnthropic, nil
	case "xai", "grok":
		return ProviderXAI, nil
	case "openrouter":
		return ProviderOpenRouter, nil
	default:
		return 0, fmt.Errorf("unknown provider: %s", s)
	}
}

// ModelCapability describes one model's capabilities and constraints.
// Instances are declared once in the provider catalogs and never mutated.
type ModelCapability struct {
	ModelName    string   `json:"model_name"`
	FriendlyName string   `json:"friendly_name"`
	Aliases      []string `json:"aliases,omitempty"`

	ContextWindow   int `json:"context_window"`
	MaxOutputTokens int `json:"max_output_tokens"`

	SupportsExtendedThinking bool `json:"supports_extended_thinking"`
	SupportsSystemPrompts    bool `json:"supports_system_prompts"`
	SupportsStreaming        bool `json:"supports_streaming"`
	SupportsFunctionCalling  bool `json:"supports_function_calling"`
	SupportsJSONMode         bool `json:"supports_json_mode"`
	SupportsImages           bool `json:"supports_images"`
	SupportsTemperature      bool `json:"supports_temperature"`

	MaxImageBytes int64 `json:"max_image_bytes"`

	// IntelligenceScore ranks the model 1-20 for auto-mode selection.
	IntelligenceScore int `json:"intelligence_score"`

	AllowCodeGeneration bool `json:"allow_code_generation"`

	Provider ProviderType `json:"provider"`
}

// Validate checks the descriptor's internal invariants.
func (c ModelCapability) Validate() error {
	if c.ModelName == "" {
		return fmt.Errorf("capability: model name is empty")
	}
	if c.ContextWindow <= 0 {
		return fmt.Errorf("capability %s: context window must be positive", c.ModelName)
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("capability %s: max output tokens must be positive", c.ModelName)
	}
	if c.MaxOutputTokens > c.ContextWindow {
		return fmt.Errorf("capability %s: max output tokens %d exceeds context window %d",
			c.ModelName, c.MaxOutputTokens, c.ContextWindow)
	}
	if c.IntelligenceScore < 1 || c.IntelligenceScore > 20 {
		return fmt.Errorf("capability %s: intelligence score %d outside [1, 20]",
			c.ModelName, c.IntelligenceScore)
	}
	if c.SupportsImages && c.MaxImageBytes <= 0 {
		return fmt.Errorf("capability %s: images supported but max image bytes is %d",
			c.ModelName, c.MaxImageBytes)
	}
	return nil
}

// MatchesName reports whether name matches the canonical model name or any
// alias, case-insensitively.
func (c ModelCapability) MatchesName(name string) bool {
	if strings.EqualFold(c.ModelName, name) {
		return true
	}
	for _, alias := range c.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// validateCatalog checks every descriptor in a provider's catalog and that
// no alias collides with another descriptor of the same provider.
func validateCatalog(catalog []ModelCapability) error {
	seen := make(map[string]string) // lowercased name/alias -> owning model
	for _, c := range catalog {
		if err := c.Validate(); err != nil {
			return err
		}
		names := append([]string{c.ModelName}, c.Aliases...)
		for _, n := range names {
			key := strings.ToLower(n)
			if owner, ok := seen[key]; ok && owner != c.ModelName {
				return fmt.Errorf("capability %s: alias %q collides with %s", c.ModelName, n, owner)
			}
			seen[key] = c.ModelName
		}
	}
	return nil
}
