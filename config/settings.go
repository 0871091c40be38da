// Package config provides application settings loaded from environment variables.
//
// Settings are created via New() which handles:
// - Environment variable parsing with validation
// - Default value application
// - Provider credential lookup and restriction policy assembly

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/richinex/conclave/llm"
	"github.com/richinex/conclave/storage"
)

// Settings holds all application configuration.
type Settings struct {
	// DefaultModel is used when a request omits the model; "auto"
	// delegates selection to the registry.
	DefaultModel string

	// AllowedModels / DisabledModels feed the restriction policy.
	// Entries match canonical names, aliases, or provider names.
	AllowedModels  []string
	DisabledModels []string

	// ExpertModel optionally pins the workflow expert-validation model.
	// Empty means auto-select a reasoning model.
	ExpertModel string

	ConversationTTL      time.Duration
	MaxConversationTurns int

	// MaxHistoryTokens is the requested budget for history rebuilds;
	// the effective budget is further bounded per model.
	MaxHistoryTokens    int
	HistorySafetyMargin int

	// Per-category provider call timeouts.
	FastTimeout      time.Duration
	ReasoningTimeout time.Duration
	GeneralTimeout   time.Duration

	// DispatchMargin is added on top of the tool timeout for the
	// dispatcher's outer safety-net deadline.
	DispatchMargin time.Duration

	Temperature float64
}

// New loads settings from environment variables.
// Returns an error if any variable contains an invalid value.
func New() (Settings, error) {
	ttl, err := getEnvDuration("CONVERSATION_TTL", storage.DefaultTTL)
	if err != nil {
		return Settings{}, err
	}
	maxTurns, err := getEnvInt("MAX_CONVERSATION_TURNS", storage.DefaultMaxTurns)
	if err != nil {
		return Settings{}, err
	}
	historyTokens, err := getEnvInt("MAX_HISTORY_TOKENS", 100_000)
	if err != nil {
		return Settings{}, err
	}
	safetyMargin, err := getEnvInt("HISTORY_SAFETY_MARGIN", 4_096)
	if err != nil {
		return Settings{}, err
	}
	fastTimeout, err := getEnvDuration("FAST_TOOL_TIMEOUT", 60*time.Second)
	if err != nil {
		return Settings{}, err
	}
	reasoningTimeout, err := getEnvDuration("REASONING_TOOL_TIMEOUT", 300*time.Second)
	if err != nil {
		return Settings{}, err
	}
	generalTimeout, err := getEnvDuration("GENERAL_TOOL_TIMEOUT", 120*time.Second)
	if err != nil {
		return Settings{}, err
	}
	dispatchMargin, err := getEnvDuration("DISPATCH_TIMEOUT_MARGIN", 30*time.Second)
	if err != nil {
		return Settings{}, err
	}
	temperature, err := getEnvFloat64("LLM_TEMPERATURE", 0.5)
	if err != nil {
		return Settings{}, err
	}
	if temperature < 0.0 || temperature > 2.0 {
		return Settings{}, fmt.Errorf("LLM_TEMPERATURE %v outside [0.0, 2.0]", temperature)
	}

	defaultModel := os.Getenv("DEFAULT_MODEL")
	if defaultModel == "" {
		defaultModel = "auto"
	}

	return Settings{
		DefaultModel:         defaultModel,
		AllowedModels:        getEnvList("ALLOWED_MODELS"),
		DisabledModels:       getEnvList("DISABLED_MODELS"),
		ExpertModel:          os.Getenv("EXPERT_MODEL"),
		ConversationTTL:      ttl,
		MaxConversationTurns: maxTurns,
		MaxHistoryTokens:     historyTokens,
		HistorySafetyMargin:  safetyMargin,
		FastTimeout:          fastTimeout,
		ReasoningTimeout:     reasoningTimeout,
		GeneralTimeout:       generalTimeout,
		DispatchMargin:       dispatchMargin,
		Temperature:          temperature,
	}, nil
}

// MustNew loads settings, panicking on invalid environment values.
// Use this only when configuration errors should be fatal.
func MustNew() Settings {
	settings, err := New()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return settings
}

// RestrictionPolicy assembles the model restriction policy.
func (s Settings) RestrictionPolicy() *llm.RestrictionPolicy {
	return llm.NewRestrictionPolicy(s.AllowedModels, s.DisabledModels)
}

// TimeoutFor returns the provider-call timeout for a tool category.
func (s Settings) TimeoutFor(category llm.Category) time.Duration {
	switch category {
	case llm.CategoryFast:
		return s.FastTimeout
	case llm.CategoryReasoning:
		return s.ReasoningTimeout
	default:
		return s.GeneralTimeout
	}
}

// APIKeyFor returns the provider's API key from the environment.
// An empty result means the provider is not configured.
func APIKeyFor(provider llm.ProviderType) string {
	return os.Getenv(provider.EnvVar())
}

// Environment variable helpers with proper error handling

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return i, nil
}

func getEnvFloat64(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return d, nil
}

func getEnvList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
