// Google Gemini Provider implementation using official google.golang.org/genai SDK.
//
// Information Hiding:
// - API authentication and client creation
// - Request/response format for Gemini API
// - System instruction handling via config
// - Thinking budget wiring for 2.5-series models

package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	client  *genai.Client
	catalog []ModelCapability
	initErr error // Stores client initialization error for deferred reporting
}

// NewGeminiProvider creates a new Gemini provider.
// If client initialization fails, the error is stored and returned on first use.
func NewGeminiProvider(apiKey string) *GeminiProvider {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return &GeminiProvider{
			catalog: geminiCatalog,
			initErr: fmt.Errorf("failed to initialize Gemini client: %w", err),
		}
	}

	return &GeminiProvider{
		client:  client,
		catalog: geminiCatalog,
	}
}

// Type returns the provider type.
func (p *GeminiProvider) Type() ProviderType { return ProviderGemini }

// Capabilities returns the provider's capability catalog.
func (p *GeminiProvider) Capabilities() []ModelCapability {
	out := make([]ModelCapability, len(p.catalog))
	copy(out, p.catalog)
	return out
}

// Capability resolves a model name or alias within the catalog.
func (p *GeminiProvider) Capability(model string) (ModelCapability, bool) {
	return catalogLookup(p.catalog, model)
}

// Generate sends one completion request.
func (p *GeminiProvider) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	if p.initErr != nil {
		return GenerationResult{}, p.initErr
	}
	if p.client == nil {
		return GenerationResult{}, fmt.Errorf("gemini client not initialized")
	}

	capability, err := checkRequest(ProviderGemini, p.catalog, req)
	if err != nil {
		return GenerationResult{}, err
	}

	contents, err := p.convertMessages(capability, req)
	if err != nil {
		return GenerationResult{}, err
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(outputCap(capability, req)),
	}
	if capability.SupportsTemperature {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if capability.SupportsExtendedThinking && req.ThinkingMode != "" {
		budget := req.ThinkingMode.BudgetTokens(capability.MaxOutputTokens / 2)
		config.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(int32(budget)),
		}
	}
	if req.JSONMode {
		config.ResponseMIMEType = "application/json"
	}

	response, err := p.client.Models.GenerateContent(ctx, capability.ModelName, contents, config)
	if err != nil {
		return GenerationResult{}, upstreamError(ProviderGemini, geminiStatus(err), err)
	}

	content := response.Text()
	finish := ""
	if len(response.Candidates) > 0 {
		finish = string(response.Candidates[0].FinishReason)
	}

	result := GenerationResult{
		Content:      content,
		FinishReason: finish,
		ModelName:    capability.ModelName,
		Provider:     ProviderGemini,
	}
	if response.UsageMetadata != nil {
		result.InputTokens = int(response.UsageMetadata.PromptTokenCount)
		result.OutputTokens = int(response.UsageMetadata.CandidatesTokenCount)
	}
	return result, nil
}

// Close releases transport resources.
func (p *GeminiProvider) Close() error { return nil }

// convertMessages converts the neutral request to Gemini contents.
// Images become inline byte parts on the final user content.
func (p *GeminiProvider) convertMessages(capability ModelCapability, req GenerationRequest) ([]*genai.Content, error) {
	var contents []*genai.Content

	for _, msg := range req.Messages {
		switch msg.Role {
		case "user":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		}
	}

	if len(req.Images) == 0 {
		return contents, nil
	}

	last := len(contents) - 1
	for ; last >= 0; last-- {
		if contents[last].Role == genai.RoleUser {
			break
		}
	}
	if last < 0 {
		return nil, errors.New("images require at least one user message")
	}
	for _, path := range req.Images {
		mime, data, err := readImage(capability.ModelName, path, capability.MaxImageBytes)
		if err != nil {
			return nil, err
		}
		contents[last].Parts = append(contents[last].Parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: mime, Data: data},
		})
	}
	return contents, nil
}

// geminiStatus extracts the HTTP status from genai SDK errors.
func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// Verify GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)
