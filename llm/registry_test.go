package llm

import (
	"context"
	"errors"
	"testing"
)

// fakeProvider is a registry test double with a fixed catalog.
type fakeProvider struct {
	ptype   ProviderType
	catalog []ModelCapability
}

func (f *fakeProvider) Type() ProviderType              { return f.ptype }
func (f *fakeProvider) Capabilities() []ModelCapability { return f.catalog }
func (f *fakeProvider) Capability(model string) (ModelCapability, bool) {
	return catalogLookup(f.catalog, model)
}
func (f *fakeProvider) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	return GenerationResult{Content: "ok", ModelName: req.Model, Provider: f.ptype}, nil
}
func (f *fakeProvider) Close() error { return nil }

func geminiFake() *fakeProvider {
	return &fakeProvider{ptype: ProviderGemini, catalog: geminiCatalog}
}

func openaiFake() *fakeProvider {
	return &fakeProvider{ptype: ProviderOpenAI, catalog: openaiCatalog}
}

func TestResolveCaseInsensitive(t *testing.T) {
	registry := NewRegistry(nil)
	if err := registry.Register(geminiFake()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for _, name := range []string{"pro", "PRO", "Pro", "gemini-2.5-pro", "GEMINI-2.5-PRO"} {
		provider, capability, err := registry.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", name, err)
		}
		if provider.Type() != ProviderGemini {
			t.Errorf("Resolve(%q): expected gemini provider, got %s", name, provider.Type())
		}
		if capability.ModelName != "gemini-2.5-pro" {
			t.Errorf("Resolve(%q): expected gemini-2.5-pro, got %s", name, capability.ModelName)
		}
	}
}

func TestResolveUnknownModel(t *testing.T) {
	registry := NewRegistry(nil)
	if err := registry.Register(geminiFake()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, _, err := registry.Resolve("no-such-model")
	if !errors.Is(err, ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestResolveCanonicalBeatsAlias(t *testing.T) {
	// A provider registered first whose alias collides with a later
	// provider's canonical name must lose the canonical pass.
	aliasOwner := &fakeProvider{ptype: ProviderXAI, catalog: []ModelCapability{{
		ModelName: "grok-4", Aliases: []string{"special"},
		ContextWindow: 100_000, MaxOutputTokens: 8_192,
		IntelligenceScore: 5, Provider: ProviderXAI,
	}}}
	canonicalOwner := &fakeProvider{ptype: ProviderOpenRouter, catalog: []ModelCapability{{
		ModelName:     "special",
		ContextWindow: 100_000, MaxOutputTokens: 8_192,
		IntelligenceScore: 5, Provider: ProviderOpenRouter,
	}}}

	registry := NewRegistry(nil)
	if err := registry.Register(aliasOwner); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register(canonicalOwner); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, capability, err := registry.Resolve("special")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if capability.ModelName != "special" {
		t.Errorf("expected canonical match to win, got %s", capability.ModelName)
	}
}

func TestResolveAliasFirstProviderWins(t *testing.T) {
	first := &fakeProvider{ptype: ProviderGemini, catalog: []ModelCapability{{
		ModelName: "model-a", Aliases: []string{"shared"},
		ContextWindow: 100_000, MaxOutputTokens: 8_192,
		IntelligenceScore: 5, Provider: ProviderGemini,
	}}}
	second := &fakeProvider{ptype: ProviderOpenAI, catalog: []ModelCapability{{
		ModelName: "model-b", Aliases: []string{"shared"},
		ContextWindow: 100_000, MaxOutputTokens: 8_192,
		IntelligenceScore: 5, Provider: ProviderOpenAI,
	}}}

	registry := NewRegistry(nil)
	if err := registry.Register(first); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register(second); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, capability, err := registry.Resolve("shared")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if capability.ModelName != "model-a" {
		t.Errorf("expected first-registered provider to win alias, got %s", capability.ModelName)
	}
}

func TestRegisterIdempotentByType(t *testing.T) {
	registry := NewRegistry(nil)
	if err := registry.Register(geminiFake()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register(geminiFake()); err != nil {
		t.Fatalf("second Register failed: %v", err)
	}
	if got := len(registry.Providers()); got != 1 {
		t.Errorf("expected 1 provider after duplicate registration, got %d", got)
	}
}

func TestRestrictionPolicyBlocksExplicitModel(t *testing.T) {
	policy := NewRestrictionPolicy(nil, []string{"gemini-2.5-pro"})
	registry := NewRegistry(policy)
	if err := registry.Register(geminiFake()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, _, err := registry.Resolve("pro")
	if !errors.Is(err, ErrModelRestricted) {
		t.Errorf("expected ErrModelRestricted, got %v", err)
	}

	// Other models remain reachable.
	if _, _, err := registry.Resolve("flash"); err != nil {
		t.Errorf("expected flash to resolve, got %v", err)
	}
}

func TestRestrictionPolicyAllowList(t *testing.T) {
	policy := NewRestrictionPolicy([]string{"flash"}, nil)
	registry := NewRegistry(policy)
	if err := registry.Register(geminiFake()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, _, err := registry.Resolve("flash"); err != nil {
		t.Errorf("allow-listed alias should resolve, got %v", err)
	}
	if _, _, err := registry.Resolve("pro"); !errors.Is(err, ErrModelRestricted) {
		t.Errorf("expected ErrModelRestricted for non-listed model, got %v", err)
	}

	available := registry.ListAvailable()
	if len(available) != 1 || available[0] != "gemini-2.5-flash" {
		t.Errorf("expected only gemini-2.5-flash available, got %v", available)
	}
}

func TestSelectAutoRanksByIntelligence(t *testing.T) {
	registry := NewRegistry(nil)
	if err := registry.Register(geminiFake()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register(openaiFake()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	capability, err := registry.SelectAuto(CategoryGeneral)
	if err != nil {
		t.Fatalf("SelectAuto failed: %v", err)
	}
	// gemini-2.5-pro carries the top intelligence score of both catalogs.
	if capability.ModelName != "gemini-2.5-pro" {
		t.Errorf("expected gemini-2.5-pro, got %s", capability.ModelName)
	}
}

func TestSelectAutoHonorsCategoryFlags(t *testing.T) {
	registry := NewRegistry(nil)
	if err := registry.Register(geminiFake()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register(openaiFake()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		category Category
		check    func(ModelCapability) bool
		desc     string
	}{
		{CategoryVision, func(c ModelCapability) bool { return c.SupportsImages }, "supports images"},
		{CategoryReasoning, func(c ModelCapability) bool { return c.SupportsExtendedThinking }, "supports thinking"},
		{CategoryFast, func(c ModelCapability) bool { return !c.SupportsExtendedThinking }, "no extended thinking"},
		{CategoryLongContext, func(c ModelCapability) bool { return c.ContextWindow >= longContextThreshold }, "long context"},
		{CategoryCoding, func(c ModelCapability) bool { return c.AllowCodeGeneration }, "code generation"},
	}

	for _, tt := range tests {
		capability, err := registry.SelectAuto(tt.category)
		if err != nil {
			t.Fatalf("SelectAuto(%s) failed: %v", tt.category, err)
		}
		if !tt.check(capability) {
			t.Errorf("SelectAuto(%s) returned %s which fails %q", tt.category, capability.ModelName, tt.desc)
		}
	}
}

func TestSelectAutoNoEligibleModel(t *testing.T) {
	// A catalog with no extended-thinking model cannot satisfy reasoning.
	registry := NewRegistry(nil)
	provider := &fakeProvider{ptype: ProviderOpenRouter, catalog: []ModelCapability{{
		ModelName:     "plain-model",
		ContextWindow: 32_000, MaxOutputTokens: 8_192,
		IntelligenceScore: 5, Provider: ProviderOpenRouter,
	}}}
	if err := registry.Register(provider); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := registry.SelectAuto(CategoryReasoning)
	if !errors.Is(err, ErrNoEligibleModel) {
		t.Errorf("expected ErrNoEligibleModel, got %v", err)
	}
}

func TestSelectAutoTieBreak(t *testing.T) {
	provider := &fakeProvider{ptype: ProviderOpenRouter, catalog: []ModelCapability{
		{
			ModelName:     "b-model",
			ContextWindow: 100_000, MaxOutputTokens: 8_192,
			IntelligenceScore: 10, Provider: ProviderOpenRouter,
		},
		{
			ModelName:     "a-model",
			ContextWindow: 100_000, MaxOutputTokens: 8_192,
			IntelligenceScore: 10, Provider: ProviderOpenRouter,
		},
		{
			ModelName:     "c-model",
			ContextWindow: 200_000, MaxOutputTokens: 8_192,
			IntelligenceScore: 10, Provider: ProviderOpenRouter,
		},
	}}
	registry := NewRegistry(nil)
	if err := registry.Register(provider); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	capability, err := registry.SelectAuto(CategoryGeneral)
	if err != nil {
		t.Fatalf("SelectAuto failed: %v", err)
	}
	// Equal scores: larger context window first.
	if capability.ModelName != "c-model" {
		t.Errorf("expected c-model (larger context), got %s", capability.ModelName)
	}
}

func TestIsAuto(t *testing.T) {
	for _, s := range []string{"auto", "AUTO", "Auto"} {
		if !IsAuto(s) {
			t.Errorf("expected IsAuto(%q) to be true", s)
		}
	}
	if IsAuto("gemini-2.5-pro") {
		t.Error("expected model name not to be auto")
	}
}
