// Tool Base (Simple) - single-shot tool execution.
//
// Algorithm: resolve the model, hydrate history for continuations,
// compose [system, history..., user] messages, make one provider call,
// and record the exchange as two turns. Thread state is only mutated
// after a successful generate.

package tools

import (
	"context"
	"encoding/json"

	"github.com/richinex/conclave/llm"
	"github.com/richinex/conclave/storage"
)

// SimpleSpec configures a single-shot tool.
type SimpleSpec struct {
	Name         string
	Description  string
	Category     llm.Category
	SystemPrompt string
}

// SimpleTool is the single-shot tool base. Concrete tools are values of
// this type with their own spec.
type SimpleTool struct {
	spec SimpleSpec
	deps Deps
}

// NewSimpleTool creates a single-shot tool from its spec.
func NewSimpleTool(spec SimpleSpec, deps Deps) *SimpleTool {
	return &SimpleTool{spec: spec, deps: deps}
}

// Name returns the tool's registered name.
func (t *SimpleTool) Name() string { return t.spec.Name }

// Description returns the tool description.
func (t *SimpleTool) Description() string { return t.spec.Description }

// Category returns the auto-mode task class.
func (t *SimpleTool) Category() llm.Category { return t.spec.Category }

// InputSchema returns the base envelope schema.
func (t *SimpleTool) InputSchema() json.RawMessage { return simpleSchema() }

// Execute runs one single-shot call.
func (t *SimpleTool) Execute(ctx context.Context, args json.RawMessage) (*Response, error) {
	var req Request
	if err := bind(args, &req); err != nil {
		return nil, err
	}
	applyModelDefault(&req, args, t.deps.Settings.DefaultModel)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	provider, capability, err := resolveModel(t.deps, req.Model, t.spec.Category)
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"provider": capability.Provider.String(),
	}
	hyd := hydrate(t.deps, req.ContinuationID, capability)
	if hyd.warning != "" {
		metadata["continuation_warning"] = hyd.warning
	}

	// Embed the request's own files after the history so the newest
	// reference of a path wins over a stale embedded copy.
	budget := storage.EffectiveBudget(
		t.deps.Settings.MaxHistoryTokens, capability, t.deps.Settings.HistorySafetyMargin)
	remaining := budget - hyd.history.TokensUsed
	fileBlock, _, _ := embedFiles(req.AbsoluteFilePaths, hyd.embedded, remaining)

	userContent := req.Prompt
	if fileBlock != "" {
		userContent = req.Prompt + "\n\n=== CONTEXT FILES ===\n" + fileBlock + "\n=== END CONTEXT FILES ==="
	}

	thinkingMode, _ := llm.ParseThinkingMode(req.ThinkingMode)
	messages := append(historyMessages(hyd.history), llm.UserMessage(userContent))

	result, err := generateWithTimeout(ctx, t.deps, provider, t.spec.Category, llm.GenerationRequest{
		Model:        capability.ModelName,
		Messages:     messages,
		SystemPrompt: t.spec.SystemPrompt,
		Temperature:  temperatureOrDefault(t.deps, req.Temperature),
		ThinkingMode: thinkingMode,
		Images:       req.Images,
	})
	if err != nil {
		return nil, err
	}

	now := nowStamp()
	threadID, err := recordTurns(t.deps, hyd.threadID, t.spec.Name,
		storage.Turn{
			Role:      storage.RoleUser,
			Content:   req.Prompt,
			ToolName:  t.spec.Name,
			Files:     req.AbsoluteFilePaths,
			Images:    req.Images,
			CreatedAt: now,
		},
		storage.Turn{
			Role:      storage.RoleAssistant,
			Content:   result.Content,
			ToolName:  t.spec.Name,
			ModelName: result.ModelName,
			CreatedAt: now,
		},
	)
	if err != nil {
		return nil, err
	}

	metadata["finish_reason"] = result.FinishReason
	return &Response{
		Content:        result.Content,
		ContinuationID: threadID,
		ModelUsed:      result.ModelName,
		Tokens:         TokenCount{Input: result.InputTokens, Output: result.OutputTokens},
		Metadata:       metadata,
	}, nil
}

// Verify SimpleTool implements Tool
var _ Tool = (*SimpleTool)(nil)
