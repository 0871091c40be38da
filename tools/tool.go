// Package tools provides the analysis tool system.
//
// Information Hiding:
// - Tool execution details hidden behind interface
// - Envelope schemas hidden in implementations
// - Registry implementation details hidden from consumers
//
// A tool is a capability set {name, category, schema, execute}; the
// Simple and Workflow bases supply the two execution shapes and the
// concrete tools configure them.
package tools

import (
	"context"
	"encoding/json"

	"github.com/richinex/conclave/config"
	"github.com/richinex/conclave/llm"
	"github.com/richinex/conclave/storage"
)

// TokenCount reports the tokens spent on one tool invocation.
type TokenCount struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

// Response is the shape shared by all tools.
type Response struct {
	Content        string         `json:"content"`
	ContinuationID string         `json:"continuation_id,omitempty"`
	ModelUsed      string         `json:"model_used,omitempty"`
	Tokens         TokenCount     `json:"tokens"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Tool is the interface all analysis tools implement.
type Tool interface {
	// Name returns the tool's registered name.
	Name() string

	// Description returns the human-readable tool description.
	Description() string

	// Category is the task class used for auto-mode model selection.
	Category() llm.Category

	// InputSchema returns the JSON schema for the tool's envelope.
	InputSchema() json.RawMessage

	// Execute runs the tool against bound arguments.
	Execute(ctx context.Context, args json.RawMessage) (*Response, error)
}

// Deps carries the shared subsystems every tool needs. Both the
// registry and the store are constructed once at startup and threaded
// through here rather than living as package globals.
type Deps struct {
	Registry *llm.Registry
	Store    *storage.Store
	Settings config.Settings
}

// baseSchemaProperties returns the JSON-schema properties shared by
// every tool envelope.
func baseSchemaProperties() map[string]any {
	return map[string]any{
		"prompt": map[string]any{
			"type":        "string",
			"description": "The question or task for the model.",
		},
		"model": map[string]any{
			"type":        "string",
			"description": `Model name or alias; "auto" lets the server pick.`,
		},
		"absolute_file_paths": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Absolute paths of files to include as context.",
		},
		"images": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Absolute paths of images to attach.",
		},
		"continuation_id": map[string]any{
			"type":        "string",
			"description": "Thread UUID from a previous response to continue it.",
		},
		"working_directory_absolute_path": map[string]any{
			"type":        "string",
			"description": "Absolute path of the caller's working directory.",
		},
		"temperature": map[string]any{
			"type":        "number",
			"description": "Sampling temperature in [0.0, 2.0].",
		},
		"thinking_mode": map[string]any{
			"type":        "string",
			"enum":        []string{"minimal", "low", "medium", "high", "max"},
			"description": "Reasoning depth for extended-thinking models.",
		},
	}
}

// simpleSchema builds the schema for a single-shot tool.
func simpleSchema() json.RawMessage {
	schema := map[string]any{
		"type":       "object",
		"properties": baseSchemaProperties(),
		"required":   []string{"prompt"},
	}
	raw, _ := json.Marshal(schema)
	return raw
}

// workflowSchema builds the schema for a step-machine tool.
func workflowSchema() json.RawMessage {
	props := baseSchemaProperties()
	props["step"] = map[string]any{
		"type":        "string",
		"description": "Narrative of what this investigation step does.",
	}
	props["step_number"] = map[string]any{
		"type":        "integer",
		"description": "Current step, starting at 1.",
	}
	props["total_steps"] = map[string]any{
		"type":        "integer",
		"description": "Expected number of steps; adjustable between calls.",
	}
	props["next_step_required"] = map[string]any{
		"type":        "boolean",
		"description": "False on the terminal step.",
	}
	props["findings"] = map[string]any{
		"type":        "string",
		"description": "Everything learned so far in this investigation.",
	}
	props["hypothesis"] = map[string]any{
		"type":        "string",
		"description": "Current working theory, if any.",
	}
	props["confidence"] = map[string]any{
		"type": "string",
		"enum": []string{"exploring", "low", "medium", "high", "very_high", "almost_certain", "certain"},
		"description": `Self-assessed certainty; "certain" skips expert validation.`,
	}
	props["files_checked"] = map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": "Absolute paths of all files examined so far.",
	}
	props["relevant_files"] = map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": "Absolute paths of files tied to the current findings.",
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"step", "step_number", "total_steps", "next_step_required", "findings"},
	}
	raw, _ := json.Marshal(schema)
	return raw
}
