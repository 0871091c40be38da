// Anthropic Provider implementation using official anthropic-sdk-go.
//
// Information Hiding:
// - API endpoint and authentication
// - Request/response format for Anthropic Messages API
// - Extended-thinking budget wiring

package llm

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements the Provider interface for Anthropic Claude.
type AnthropicProvider struct {
	client  anthropic.Client
	catalog []ModelCapability
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &AnthropicProvider{
		client:  client,
		catalog: anthropicCatalog,
	}
}

// Type returns the provider type.
func (p *AnthropicProvider) Type() ProviderType { return ProviderAnthropic }

// Capabilities returns the provider's capability catalog.
func (p *AnthropicProvider) Capabilities() []ModelCapability {
	out := make([]ModelCapability, len(p.catalog))
	copy(out, p.catalog)
	return out
}

// Capability resolves a model name or alias within the catalog.
func (p *AnthropicProvider) Capability(model string) (ModelCapability, bool) {
	return catalogLookup(p.catalog, model)
}

// Generate sends one completion request.
func (p *AnthropicProvider) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	capability, err := checkRequest(ProviderAnthropic, p.catalog, req)
	if err != nil {
		return GenerationResult{}, err
	}

	messages, err := p.convertMessages(capability, req)
	if err != nil {
		return GenerationResult{}, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(capability.ModelName),
		MaxTokens: int64(outputCap(capability, req)),
		Messages:  messages,
	}

	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		}
	}

	thinking := capability.SupportsExtendedThinking && req.ThinkingMode != ""
	if thinking {
		budget := req.ThinkingMode.BudgetTokens(capability.MaxOutputTokens / 2)
		if budget >= 1024 {
			params.Thinking = anthropic.ThinkingConfigParamUnion{
				OfEnabled: &anthropic.ThinkingConfigEnabledParam{
					BudgetTokens: int64(budget),
				},
			}
		} else {
			thinking = false
		}
	}
	// The Messages API rejects explicit temperatures while thinking is on.
	if capability.SupportsTemperature && !thinking {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return GenerationResult{}, upstreamError(ProviderAnthropic, anthropicStatus(err), err)
	}

	content := ""
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			content += variant.Text
		}
	}

	return GenerationResult{
		Content:      content,
		FinishReason: string(message.StopReason),
		InputTokens:  int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
		ModelName:    capability.ModelName,
		Provider:     ProviderAnthropic,
	}, nil
}

// Close releases transport resources.
func (p *AnthropicProvider) Close() error { return nil }

// convertMessages converts the neutral request to Anthropic format.
// Images attach to the final user message as base64 blocks.
func (p *AnthropicProvider) convertMessages(capability ModelCapability, req GenerationRequest) ([]anthropic.MessageParam, error) {
	var result []anthropic.MessageParam

	for _, msg := range req.Messages {
		switch msg.Role {
		case "user":
			result = append(result, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		case "assistant":
			result = append(result, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		}
	}

	if len(req.Images) == 0 {
		return result, nil
	}

	last := len(result) - 1
	for ; last >= 0; last-- {
		if result[last].Role == anthropic.MessageParamRoleUser {
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
		result[last].Content = append(result[last].Content,
			anthropic.NewImageBlockBase64(mime, base64.StdEncoding.EncodeToString(data)))
	}
	return result, nil
}

// anthropicStatus extracts the HTTP status from SDK error types.
func anthropicStatus(err error) int {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Verify AnthropicProvider implements Provider
var _ Provider = (*AnthropicProvider)(nil)
