// Tool Base (Workflow) - the step machine driving multi-phase
// investigations.
//
// States: PLANNING (step 1) -> INVESTIGATING (middle steps) ->
// VALIDATING (terminal step, unless the client asserts certainty) ->
// TERMINAL. Only next_step_required drives transitions; confidence
// regressions are recorded but never change state.
//
// File embedding per phase:
// - PLANNING: references only (path, size, language hint)
// - INVESTIGATING: full bodies of relevant files not yet embedded
// - VALIDATING: full bodies of all relevant files plus the findings dump
//
// The VALIDATING phase optionally consults an expert model with the
// whole investigation trace; an expert failure degrades to the primary
// synthesis with the error reported in metadata.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jsonutil "github.com/richinex/conclave/internal/json"
	"github.com/richinex/conclave/llm"
	"github.com/richinex/conclave/storage"
)

// StepState is the workflow phase derived from the envelope.
type StepState string

const (
	StatePlanning      StepState = "planning"
	StateInvestigating StepState = "investigating"
	StateValidating    StepState = "validating"
	StateTerminal      StepState = "terminal"
)

// stepState derives the phase from the step fields. next_step_required
// is the only transition driver; confidence=certain on the terminal
// step skips validation because the client has asserted completeness.
func stepState(req *WorkflowRequest) StepState {
	if req.NextStepRequired {
		if req.StepNumber == 1 {
			return StatePlanning
		}
		return StateInvestigating
	}
	if req.Confidence == ConfidenceCertain {
		return StateTerminal
	}
	return StateValidating
}

// WorkflowSpec configures a step-machine tool.
type WorkflowSpec struct {
	Name         string
	Description  string
	Category     llm.Category
	SystemPrompt string

	// ExpertPrompt frames the expert validation call.
	ExpertPrompt string

	// DisableExpert turns off expert validation entirely (used by
	// tools whose output is a plan, not a verdict).
	DisableExpert bool
}

// WorkflowTool is the step-machine tool base.
type WorkflowTool struct {
	spec WorkflowSpec
	deps Deps
}

// NewWorkflowTool creates a workflow tool from its spec.
func NewWorkflowTool(spec WorkflowSpec, deps Deps) *WorkflowTool {
	return &WorkflowTool{spec: spec, deps: deps}
}

// Name returns the tool's registered name.
func (t *WorkflowTool) Name() string { return t.spec.Name }

// Description returns the tool description.
func (t *WorkflowTool) Description() string { return t.spec.Description }

// Category returns the auto-mode task class.
func (t *WorkflowTool) Category() llm.Category { return t.spec.Category }

// InputSchema returns the workflow envelope schema.
func (t *WorkflowTool) InputSchema() json.RawMessage { return workflowSchema() }

// Execute advances the step machine by one step.
func (t *WorkflowTool) Execute(ctx context.Context, args json.RawMessage) (*Response, error) {
	var req WorkflowRequest
	if err := bind(args, &req); err != nil {
		return nil, err
	}
	applyModelDefault(&req.Request, args, t.deps.Settings.DefaultModel)
	if req.Confidence == "" {
		req.Confidence = ConfidenceExploring
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	provider, capability, err := resolveModel(t.deps, req.Model, t.spec.Category)
	if err != nil {
		return nil, err
	}

	state := stepState(&req)
	metadata := map[string]any{
		"provider":           capability.Provider.String(),
		"step_number":        req.StepNumber,
		"total_steps":        req.TotalSteps,
		"next_step_required": req.NextStepRequired,
		"confidence":         string(req.Confidence),
		"state":              string(state),
	}

	hyd := hydrate(t.deps, req.ContinuationID, capability)
	if hyd.warning != "" {
		metadata["continuation_warning"] = hyd.warning
	}

	budget := storage.EffectiveBudget(
		t.deps.Settings.MaxHistoryTokens, capability, t.deps.Settings.HistorySafetyMargin)
	remaining := budget - hyd.history.TokensUsed

	stepContent := t.renderStep(&req, state, hyd.embedded, remaining)

	thinkingMode, _ := llm.ParseThinkingMode(req.ThinkingMode)
	messages := append(historyMessages(hyd.history), llm.UserMessage(stepContent))

	result, err := generateWithTimeout(ctx, t.deps, provider, t.spec.Category, llm.GenerationRequest{
		Model:        capability.ModelName,
		Messages:     messages,
		SystemPrompt: t.spec.SystemPrompt,
		Temperature:  temperatureOrDefault(t.deps, req.Temperature),
		ThinkingMode: thinkingMode,
		Images:       req.Images,
	})
	if err != nil {
		// Intermediate steps are recoverable: nothing was appended, so
		// the caller may retry with an adjusted step_number.
		return nil, err
	}

	content := result.Content
	inputTokens := result.InputTokens
	outputTokens := result.OutputTokens

	if state == StateValidating && !t.spec.DisableExpert {
		expert, expertErr := t.expertValidate(ctx, &req, messages, result.Content)
		if expertErr != nil {
			// Degrade gracefully: the primary synthesis stands and the
			// expert failure is reported in metadata.
			metadata["expert_error"] = expertErr.Error()
		} else {
			content += fmt.Sprintf("\n\n=== EXPERT VALIDATION (%s) ===\n%s", expert.ModelName, expert.Content)
			metadata["expert_model"] = expert.ModelName
			if verdict, err := jsonutil.ExtractJSONFromResponse[expertVerdict](expert.Content); err == nil && verdict.Verdict != "" {
				metadata["expert_verdict"] = verdict.Verdict
			}
			inputTokens += expert.InputTokens
			outputTokens += expert.OutputTokens
		}
	}

	now := nowStamp()
	threadID, err := recordTurns(t.deps, hyd.threadID, t.spec.Name,
		storage.Turn{
			Role:      storage.RoleUser,
			Content:   stepSummary(&req),
			ToolName:  t.spec.Name,
			Files:     req.RelevantFiles,
			Images:    req.Images,
			CreatedAt: now,
		},
		storage.Turn{
			Role:      storage.RoleAssistant,
			Content:   content,
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
		Content:        content,
		ContinuationID: threadID,
		ModelUsed:      result.ModelName,
		Tokens:         TokenCount{Input: inputTokens, Output: outputTokens},
		Metadata:       metadata,
	}, nil
}

// renderStep builds the user message for this step, applying the
// per-phase file embedding policy.
func (t *WorkflowTool) renderStep(req *WorkflowRequest, state StepState, embedded map[string]bool, budget int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== STEP %d/%d (%s) ===\n", req.StepNumber, req.TotalSteps, state)
	sb.WriteString(req.Step)
	if req.Findings != "" {
		sb.WriteString("\n\n=== FINDINGS ===\n")
		sb.WriteString(req.Findings)
	}
	if req.Hypothesis != "" {
		sb.WriteString("\n\n=== HYPOTHESIS ===\n")
		sb.WriteString(req.Hypothesis)
	}
	fmt.Fprintf(&sb, "\n\nConfidence: %s", req.Confidence)

	switch state {
	case StatePlanning:
		// References only: lets the model announce intent without
		// spending the budget on bodies.
		if block := formatReferences(req.RelevantFiles); block != "" {
			sb.WriteString("\n\n")
			sb.WriteString(block)
		}
	case StateInvestigating:
		block, _, _ := embedFiles(req.RelevantFiles, embedded, budget)
		if block != "" {
			sb.WriteString("\n\n")
			sb.WriteString(block)
		}
	case StateValidating, StateTerminal:
		// Everything relevant, regardless of earlier embedding: the
		// final assessment must not depend on scattered history.
		block, _, _ := embedFiles(req.RelevantFiles, nil, budget)
		if block != "" {
			sb.WriteString("\n\n")
			sb.WriteString(block)
		}
		if len(req.FilesChecked) > 0 {
			sb.WriteString("\n\n=== FILES CHECKED ===\n")
			sb.WriteString(strings.Join(req.FilesChecked, "\n"))
		}
	}
	return sb.String()
}

// expertVerdict is the structured shape the expert is asked to return.
type expertVerdict struct {
	Verdict       string `json:"verdict"` // approve | challenge | extend
	Justification string `json:"justification"`
}

// expertValidate makes the second provider call with a harder-reasoning
// model, passing the investigation trace and the primary synthesis.
func (t *WorkflowTool) expertValidate(ctx context.Context, req *WorkflowRequest, trace []llm.ChatMessage, synthesis string) (llm.GenerationResult, error) {
	expertModel := t.deps.Settings.ExpertModel
	if expertModel == "" {
		capability, err := t.deps.Registry.SelectAuto(llm.CategoryReasoning)
		if err != nil {
			// Fall back to the tool's own category before giving up.
			capability, err = t.deps.Registry.SelectAuto(t.spec.Category)
			if err != nil {
				return llm.GenerationResult{}, err
			}
		}
		expertModel = capability.ModelName
	}
	provider, capability, err := t.deps.Registry.Resolve(expertModel)
	if err != nil {
		return llm.GenerationResult{}, err
	}

	var sb strings.Builder
	sb.WriteString("=== INVESTIGATION TRACE ===\n")
	for _, msg := range trace {
		fmt.Fprintf(&sb, "[%s]\n%s\n\n", msg.Role, msg.Content)
	}
	sb.WriteString("=== PRIMARY SYNTHESIS ===\n")
	sb.WriteString(synthesis)
	sb.WriteString("\n\nReview the investigation. Approve, challenge, or extend the findings.\n")
	sb.WriteString(`Reply with your analysis followed by a JSON object {"verdict": "approve|challenge|extend", "justification": "..."}.`)

	expertPrompt := t.spec.ExpertPrompt
	if expertPrompt == "" {
		expertPrompt = "You are a senior engineer reviewing a completed investigation. Be skeptical and concrete."
	}

	return generateWithTimeout(ctx, t.deps, provider, llm.CategoryReasoning, llm.GenerationRequest{
		Model:        capability.ModelName,
		Messages:     []llm.ChatMessage{llm.UserMessage(sb.String())},
		SystemPrompt: expertPrompt,
		Temperature:  t.deps.Settings.Temperature,
		ThinkingMode: llm.ThinkingHigh,
	})
}

// stepSummary is the compact record of the incoming step stored as the
// user turn.
func stepSummary(req *WorkflowRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Step %d/%d: %s", req.StepNumber, req.TotalSteps, req.Step)
	if req.Findings != "" {
		fmt.Fprintf(&sb, "\nFindings: %s", req.Findings)
	}
	if req.Hypothesis != "" {
		fmt.Fprintf(&sb, "\nHypothesis: %s", req.Hypothesis)
	}
	fmt.Fprintf(&sb, "\nConfidence: %s", req.Confidence)
	return sb.String()
}

// Verify WorkflowTool implements Tool
var _ Tool = (*WorkflowTool)(nil)
