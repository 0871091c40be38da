// listmodels - renders the model catalog so clients can present the
// available choices. Pure registry read; no provider call, no thread.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/richinex/conclave/llm"
)

// ListModelsTool renders the catalog of available models per provider.
type ListModelsTool struct {
	deps Deps
}

// NewListModelsTool creates the catalog tool.
func NewListModelsTool(deps Deps) *ListModelsTool {
	return &ListModelsTool{deps: deps}
}

// Name returns the tool's registered name.
func (t *ListModelsTool) Name() string { return "listmodels" }

// Description returns the tool description.
func (t *ListModelsTool) Description() string {
	return "List the configured providers, their models, aliases, and capability summary."
}

// Category returns the auto-mode task class.
func (t *ListModelsTool) Category() llm.Category { return llm.CategoryFast }

// InputSchema returns an empty-object schema: the tool takes no input.
func (t *ListModelsTool) InputSchema() json.RawMessage {
	raw, _ := json.Marshal(map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	})
	return raw
}

// Execute renders the catalog.
func (t *ListModelsTool) Execute(_ context.Context, _ json.RawMessage) (*Response, error) {
	var sb strings.Builder
	sb.WriteString("# Available Models\n")

	total := 0
	for _, p := range t.deps.Registry.Providers() {
		fmt.Fprintf(&sb, "\n## %s\n", p.Type())
		for _, c := range p.Capabilities() {
			if !t.deps.Settings.RestrictionPolicy().Allows(c) {
				continue
			}
			total++
			fmt.Fprintf(&sb, "- **%s** (%s): score %d, context %s, output %s",
				c.ModelName, c.FriendlyName, c.IntelligenceScore,
				humanTokens(c.ContextWindow), humanTokens(c.MaxOutputTokens))
			if len(c.Aliases) > 0 {
				fmt.Fprintf(&sb, ", aliases: %s", strings.Join(c.Aliases, ", "))
			}
			var flags []string
			if c.SupportsExtendedThinking {
				flags = append(flags, "thinking")
			}
			if c.SupportsImages {
				flags = append(flags, "vision")
			}
			if c.SupportsJSONMode {
				flags = append(flags, "json")
			}
			if len(flags) > 0 {
				fmt.Fprintf(&sb, " [%s]", strings.Join(flags, ", "))
			}
			sb.WriteString("\n")
		}
	}
	if total == 0 {
		sb.WriteString("\nNo providers configured. Set at least one provider API key.\n")
	}

	return &Response{
		Content: sb.String(),
		Metadata: map[string]any{
			"model_count": total,
		},
	}, nil
}

// humanTokens renders a token count compactly.
func humanTokens(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%dK", n/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// Verify ListModelsTool implements Tool
var _ Tool = (*ListModelsTool)(nil)
