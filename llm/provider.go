// Package llm provides LLM provider abstractions.
//
// Provider interface - the abstract interface for LLM providers.
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling and classification
// - Capability enforcement for its model catalog

package llm

import (
	"context"
)

// Provider defines the abstract interface for LLM provider backends.
// A provider owns a catalog of model capability descriptors and answers
// Generate calls for those models only.
type Provider interface {
	// Type returns the provider's type tag.
	Type() ProviderType

	// Capabilities returns the provider's full capability catalog.
	Capabilities() []ModelCapability

	// Capability resolves a canonical name or alias (case-insensitive)
	// within this provider's catalog.
	Capability(model string) (ModelCapability, bool)

	// Generate sends one completion request. The request's Model must be
	// a canonical name from this provider's catalog; requests using
	// features the model lacks fail with FeatureUnsupportedError.
	Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error)

	// Close releases the provider's transport resources.
	Close() error
}

// catalogLookup resolves a name or alias within a catalog slice. Shared
// by the concrete providers so Capability behaves identically everywhere.
func catalogLookup(catalog []ModelCapability, model string) (ModelCapability, bool) {
	for _, c := range catalog {
		if c.MatchesName(model) {
			return c, true
		}
	}
	return ModelCapability{}, false
}

// checkRequest enforces the capability descriptor against a request.
// Returns the descriptor on success so callers can use its limits.
func checkRequest(provider ProviderType, catalog []ModelCapability, req GenerationRequest) (ModelCapability, error) {
	capability, ok := catalogLookup(catalog, req.Model)
	if !ok {
		return ModelCapability{}, &ModelNotSupportedError{Provider: provider, Model: req.Model}
	}
	if len(req.Images) > 0 && !capability.SupportsImages {
		return ModelCapability{}, &FeatureUnsupportedError{Model: capability.ModelName, Feature: "images"}
	}
	if req.JSONMode && !capability.SupportsJSONMode {
		return ModelCapability{}, &FeatureUnsupportedError{Model: capability.ModelName, Feature: "JSON mode"}
	}
	if req.SystemPrompt != "" && !capability.SupportsSystemPrompts {
		return ModelCapability{}, &FeatureUnsupportedError{Model: capability.ModelName, Feature: "system prompts"}
	}
	return capability, nil
}

// outputCap returns the effective max output tokens for a request:
// the requested cap bounded by the descriptor, or the descriptor's cap.
func outputCap(capability ModelCapability, req GenerationRequest) int {
	if req.MaxOutputTokens > 0 && req.MaxOutputTokens < capability.MaxOutputTokens {
		return req.MaxOutputTokens
	}
	return capability.MaxOutputTokens
}
