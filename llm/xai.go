// X.AI Provider implementation using go-openai library.
//
// Information Hiding:
// - Uses the OpenAI-compatible API with the X.AI base URL
// - GROK model catalog and alias shorthands ("grok", "grok4")

package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

const xaiBaseURL = "https://api.x.ai/v1"

// XAIProvider implements the Provider interface for X.AI GROK models.
type XAIProvider struct {
	core openaiCore
}

// NewXAIProvider creates a new X.AI provider.
func NewXAIProvider(apiKey string) *XAIProvider {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = xaiBaseURL

	return &XAIProvider{
		core: openaiCore{
			client:  openai.NewClientWithConfig(config),
			ptype:   ProviderXAI,
			catalog: xaiCatalog,
		},
	}
}

// Type returns the provider type.
func (p *XAIProvider) Type() ProviderType { return p.core.ptype }

// Capabilities returns the provider's capability catalog.
func (p *XAIProvider) Capabilities() []ModelCapability { return p.core.capabilities() }

// Capability resolves a model name or alias within the catalog.
func (p *XAIProvider) Capability(model string) (ModelCapability, bool) {
	return catalogLookup(p.core.catalog, model)
}

// Generate sends one completion request.
func (p *XAIProvider) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	return p.core.generate(ctx, req)
}

// Close releases transport resources.
func (p *XAIProvider) Close() error { return nil }

// Verify XAIProvider implements Provider
var _ Provider = (*XAIProvider)(nil)
