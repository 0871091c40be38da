// Dispatcher - binds MCP tool calls to the tool registry, applies the
// outer safety-net timeout, and serializes the shared response shape.
//
// Every call returns a JSON envelope {success, content?, continuation_id?,
// error?, metadata} regardless of which tool ran. Structured errors map
// to stable kinds; anything unexpected becomes InternalError with a
// correlation ID written to the log.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/richinex/conclave/config"
	"github.com/richinex/conclave/llm"
	"github.com/richinex/conclave/storage"
	"github.com/richinex/conclave/tools"
)

// ErrorInfo is the serialized error payload.
type ErrorInfo struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Envelope is the response shape shared across all tools.
type Envelope struct {
	Success        bool           `json:"success"`
	Content        string         `json:"content,omitempty"`
	ContinuationID string         `json:"continuation_id,omitempty"`
	Error          *ErrorInfo     `json:"error,omitempty"`
	Metadata       map[string]any `json:"metadata"`
}

// Dispatcher routes tool calls and owns the error envelope contract.
type Dispatcher struct {
	tools    *tools.Registry
	settings config.Settings
}

// NewDispatcher creates a dispatcher over a tool registry.
func NewDispatcher(registry *tools.Registry, settings config.Settings) *Dispatcher {
	return &Dispatcher{tools: registry, settings: settings}
}

// RegisterAll registers every tool with the MCP server.
func (d *Dispatcher) RegisterAll(s *server.MCPServer) {
	for _, t := range d.tools.List() {
		tool := t // capture
		s.AddTool(
			mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), tool.InputSchema()),
			func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return d.handle(ctx, tool.Name(), req)
			},
		)
	}
}

// handle runs one tool call end to end.
func (d *Dispatcher) handle(ctx context.Context, name string, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := json.Marshal(req.GetArguments())
	if err != nil {
		return d.result(d.failure("ValidationError", fmt.Sprintf("unreadable arguments: %v", err), nil)), nil
	}
	env := d.Dispatch(ctx, name, args)
	return d.result(env), nil
}

// Dispatch looks up the tool, executes it under the outer timeout, and
// translates the outcome into the shared envelope. It is the seam used
// by tests to drive calls without an MCP transport.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) Envelope {
	tool, ok := d.tools.Get(name)
	if !ok {
		return d.failure("UnknownTool", fmt.Sprintf("no tool named %q", name), nil)
	}

	// Safety net on top of the per-call provider timeout.
	timeout := d.settings.TimeoutFor(tool.Category()) + d.settings.DispatchMargin
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := tool.Execute(ctx, args)
	if err != nil {
		return d.errorEnvelope(name, err)
	}

	metadata := resp.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	if resp.ModelUsed != "" {
		metadata["model_used"] = resp.ModelUsed
	}
	if resp.Tokens.Input > 0 || resp.Tokens.Output > 0 {
		metadata["tokens"] = map[string]int{
			"input":  resp.Tokens.Input,
			"output": resp.Tokens.Output,
		}
	}
	return Envelope{
		Success:        true,
		Content:        resp.Content,
		ContinuationID: resp.ContinuationID,
		Metadata:       metadata,
	}
}

// errorEnvelope maps a structured error to its wire kind.
func (d *Dispatcher) errorEnvelope(tool string, err error) Envelope {
	var validationErr *tools.ValidationError
	var featureErr *llm.FeatureUnsupportedError
	var notSupportedErr *llm.ModelNotSupportedError
	var upstreamErr *llm.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		return d.failure("ValidationError", validationErr.Error(), map[string]any{"field": validationErr.Field})
	case errors.Is(err, llm.ErrModelRestricted):
		return d.failure("ModelRestricted", err.Error(), nil)
	case errors.Is(err, llm.ErrUnknownModel):
		return d.failure("UnknownModel", err.Error(), nil)
	case errors.Is(err, llm.ErrNoEligibleModel):
		return d.failure("NoEligibleModel", err.Error(), nil)
	case errors.As(err, &notSupportedErr):
		// The registry resolves before providers are called, so this
		// only fires on direct misuse; surface it as the same kind.
		return d.failure("UnknownModel", notSupportedErr.Error(), nil)
	case errors.As(err, &featureErr):
		return d.failure("FeatureUnsupported", featureErr.Error(), map[string]any{"feature": featureErr.Feature})
	case errors.Is(err, storage.ErrThreadCapacityExceeded):
		return d.failure("ThreadCapacityExceeded", "conversation is at its turn limit; start a new thread", nil)
	case errors.Is(err, storage.ErrThreadNotFound):
		return d.failure("ThreadNotFound", err.Error(), nil)
	case errors.As(err, &upstreamErr):
		return d.failure("UpstreamError", upstreamErr.Error(), map[string]any{
			"provider":  upstreamErr.Provider.String(),
			"retryable": upstreamErr.Retryable,
		})
	case errors.Is(err, context.Canceled):
		return d.failure("Cancelled", "the call was cancelled", nil)
	case errors.Is(err, context.DeadlineExceeded):
		return d.failure("UpstreamError", "the call timed out", map[string]any{"retryable": true})
	default:
		correlation := uuid.NewString()
		log.Printf("ERROR [%s] tool %s: %v", correlation, tool, err)
		return d.failure("InternalError",
			fmt.Sprintf("unexpected error (correlation %s)", correlation),
			map[string]any{"correlation_id": correlation})
	}
}

func (d *Dispatcher) failure(kind, message string, details map[string]any) Envelope {
	return Envelope{
		Success:  false,
		Error:    &ErrorInfo{Kind: kind, Message: message, Details: details},
		Metadata: map[string]any{},
	}
}

// result serializes an envelope into the MCP tool result.
func (d *Dispatcher) result(env Envelope) *mcp.CallToolResult {
	payload, err := json.Marshal(env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("serializing response: %v", err))
	}
	if !env.Success {
		return mcp.NewToolResultError(string(payload))
	}
	return mcp.NewToolResultText(string(payload))
}
