// OpenAI Provider implementation using go-openai library.
//
// Information Hiding:
// - API endpoint and authentication
// - Request/response format for OpenAI Chat Completions API
// - Error classification into the shared taxonomy
//
// The same core drives the X.AI and OpenRouter providers, which speak
// the OpenAI-compatible dialect against different base URLs.

package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the Provider interface for OpenAI.
type OpenAIProvider struct {
	core openaiCore
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		core: openaiCore{
			client:  openai.NewClient(apiKey),
			ptype:   ProviderOpenAI,
			catalog: openaiCatalog,
		},
	}
}

// Type returns the provider type.
func (p *OpenAIProvider) Type() ProviderType { return p.core.ptype }

// Capabilities returns the provider's capability catalog.
func (p *OpenAIProvider) Capabilities() []ModelCapability { return p.core.capabilities() }

// Capability resolves a model name or alias within the catalog.
func (p *OpenAIProvider) Capability(model string) (ModelCapability, bool) {
	return catalogLookup(p.core.catalog, model)
}

// Generate sends one completion request.
func (p *OpenAIProvider) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	return p.core.generate(ctx, req)
}

// Close releases transport resources. go-openai keeps no per-provider
// connections outside the shared http.Client, so this is a no-op.
func (p *OpenAIProvider) Close() error { return nil }

// openaiCore is the shared engine for providers speaking the OpenAI
// Chat Completions dialect.
type openaiCore struct {
	client  *openai.Client
	ptype   ProviderType
	catalog []ModelCapability
}

func (c *openaiCore) capabilities() []ModelCapability {
	out := make([]ModelCapability, len(c.catalog))
	copy(out, c.catalog)
	return out
}

func (c *openaiCore) generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	capability, err := checkRequest(c.ptype, c.catalog, req)
	if err != nil {
		return GenerationResult{}, err
	}

	messages, err := c.convertMessages(capability, req)
	if err != nil {
		return GenerationResult{}, err
	}

	chatReq := openai.ChatCompletionRequest{
		Model:               capability.ModelName,
		Messages:            messages,
		MaxCompletionTokens: outputCap(capability, req),
	}
	if capability.SupportsTemperature {
		chatReq.Temperature = float32(req.Temperature)
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return GenerationResult{}, upstreamError(c.ptype, openaiStatus(err), err)
	}

	content := ""
	finish := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
		finish = string(resp.Choices[0].FinishReason)
	}

	return GenerationResult{
		Content:      content,
		FinishReason: finish,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		ModelName:    capability.ModelName,
		Provider:     c.ptype,
	}, nil
}

// convertMessages maps the neutral request to OpenAI chat messages.
// The system prompt leads; images attach to the final user message.
func (c *openaiCore) convertMessages(capability ModelCapability, req GenerationRequest) ([]openai.ChatCompletionMessage, error) {
	var result []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		result = append(result, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	for _, msg := range req.Messages {
		result = append(result, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	if len(req.Images) == 0 {
		return result, nil
	}

	parts := []openai.ChatMessagePart{}
	// Attach images to the final user message so they sit next to the
	// prompt they illustrate.
	last := len(result) - 1
	for ; last >= 0; last-- {
		if result[last].Role == openai.ChatMessageRoleUser {
			break
		}
	}
	if last < 0 {
		return nil, fmt.Errorf("images require at least one user message")
	}
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: result[last].Content,
	})
	for _, path := range req.Images {
		dataURL, err := imageDataURL(capability.ModelName, path, capability.MaxImageBytes)
		if err != nil {
			return nil, err
		}
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
		})
	}
	result[last].Content = ""
	result[last].MultiContent = parts
	return result, nil
}

// openaiStatus extracts the HTTP status from go-openai error types.
func openaiStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// imageDataURL reads an image file and encodes it as a base64 data URL,
// enforcing the model's image size cap.
func imageDataURL(model, path string, maxBytes int64) (string, error) {
	mime, data, err := readImage(model, path, maxBytes)
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// readImage loads an image file and enforces the model's size cap.
func readImage(model, path string, maxBytes int64) (string, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading image %s: %w", path, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", nil, &FeatureUnsupportedError{
			Model:   model,
			Feature: fmt.Sprintf("images larger than %d bytes", maxBytes),
		}
	}
	return imageMIME(path), data, nil
}

// imageMIME guesses the MIME type from the file extension.
func imageMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
