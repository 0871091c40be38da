package tools

import (
	"context"
	"testing"
	"time"

	"github.com/richinex/conclave/config"
	"github.com/richinex/conclave/llm"
	"github.com/richinex/conclave/storage"
)

// fakeProvider is the provider test double shared by the tool tests.
// It records every request and answers through a pluggable reply func.
type fakeProvider struct {
	catalog []llm.ModelCapability
	calls   []llm.GenerationRequest
	reply   func(call int, req llm.GenerationRequest) (llm.GenerationResult, error)
}

func (f *fakeProvider) Type() llm.ProviderType              { return llm.ProviderOpenRouter }
func (f *fakeProvider) Capabilities() []llm.ModelCapability { return f.catalog }
func (f *fakeProvider) Close() error                        { return nil }

func (f *fakeProvider) Capability(model string) (llm.ModelCapability, bool) {
	for _, c := range f.catalog {
		if c.MatchesName(model) {
			return c, true
		}
	}
	return llm.ModelCapability{}, false
}

func (f *fakeProvider) Generate(ctx context.Context, req llm.GenerationRequest) (llm.GenerationResult, error) {
	call := len(f.calls)
	f.calls = append(f.calls, req)
	if f.reply != nil {
		return f.reply(call, req)
	}
	return llm.GenerationResult{
		Content:      "ok",
		FinishReason: "stop",
		InputTokens:  10,
		OutputTokens: 5,
		ModelName:    req.Model,
		Provider:     llm.ProviderOpenRouter,
	}, nil
}

func testCatalog() []llm.ModelCapability {
	return []llm.ModelCapability{
		{
			ModelName:                "unit-thinker",
			FriendlyName:             "Unit Thinker",
			Aliases:                  []string{"thinker"},
			ContextWindow:            200_000,
			MaxOutputTokens:          50_000,
			SupportsExtendedThinking: true,
			SupportsSystemPrompts:    true,
			SupportsStreaming:        true,
			SupportsTemperature:      true,
			IntelligenceScore:        15,
			AllowCodeGeneration:      true,
			Provider:                 llm.ProviderOpenRouter,
		},
		{
			ModelName:             "unit-quick",
			FriendlyName:          "Unit Quick",
			Aliases:               []string{"quick"},
			ContextWindow:         100_000,
			MaxOutputTokens:       8_192,
			SupportsSystemPrompts: true,
			SupportsStreaming:     true,
			SupportsTemperature:   true,
			IntelligenceScore:     5,
			AllowCodeGeneration:   true,
			Provider:              llm.ProviderOpenRouter,
		},
	}
}

func testSettings() config.Settings {
	return config.Settings{
		DefaultModel:         "auto",
		ConversationTTL:      3 * time.Hour,
		MaxConversationTurns: 20,
		MaxHistoryTokens:     50_000,
		HistorySafetyMargin:  1_000,
		FastTimeout:          5 * time.Second,
		ReasoningTimeout:     5 * time.Second,
		GeneralTimeout:       5 * time.Second,
		DispatchMargin:       time.Second,
		Temperature:          0.5,
	}
}

// testDeps builds a Deps wired to a fresh fake provider and store.
func testDeps(t *testing.T, reply func(call int, req llm.GenerationRequest) (llm.GenerationResult, error)) (Deps, *fakeProvider) {
	t.Helper()

	fake := &fakeProvider{catalog: testCatalog(), reply: reply}
	registry := llm.NewRegistry(nil)
	if err := registry.Register(fake); err != nil {
		t.Fatalf("registering fake provider: %v", err)
	}
	store := storage.NewStore(3*time.Hour, 20)
	return Deps{Registry: registry, Store: store, Settings: testSettings()}, fake
}
