// OpenRouter Provider implementation using go-openai library.
//
// Information Hiding:
// - Uses the OpenAI-compatible API with the OpenRouter base URL
// - Aggregator catalog: model names are vendor-prefixed
//   ("deepseek/deepseek-r1") with plain aliases ("r1")

package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

const openrouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider implements the Provider interface for OpenRouter.
type OpenRouterProvider struct {
	core openaiCore
}

// NewOpenRouterProvider creates a new OpenRouter provider.
func NewOpenRouterProvider(apiKey string) *OpenRouterProvider {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = openrouterBaseURL

	return &OpenRouterProvider{
		core: openaiCore{
			client:  openai.NewClientWithConfig(config),
			ptype:   ProviderOpenRouter,
			catalog: openrouterCatalog,
		},
	}
}

// Type returns the provider type.
func (p *OpenRouterProvider) Type() ProviderType { return p.core.ptype }

// Capabilities returns the provider's capability catalog.
func (p *OpenRouterProvider) Capabilities() []ModelCapability { return p.core.capabilities() }

// Capability resolves a model name or alias within the catalog.
func (p *OpenRouterProvider) Capability(model string) (ModelCapability, bool) {
	return catalogLookup(p.core.catalog, model)
}

// Generate sends one completion request.
func (p *OpenRouterProvider) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	return p.core.generate(ctx, req)
}

// Close releases transport resources.
func (p *OpenRouterProvider) Close() error { return nil }

// Verify OpenRouterProvider implements Provider
var _ Provider = (*OpenRouterProvider)(nil)
