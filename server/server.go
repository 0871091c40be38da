// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it constructs the provider registry,
// the conversation store, and the tool registry once, and injects them
// into every tool. No business logic lives here, only wiring.
package server

import (
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/richinex/conclave/config"
	"github.com/richinex/conclave/llm"
	"github.com/richinex/conclave/storage"
	"github.com/richinex/conclave/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// providerConstructors lists every known provider with its factory.
// Registration order matters: it is the alias resolution precedence.
var providerConstructors = []struct {
	ptype llm.ProviderType
	build func(apiKey string) llm.Provider
}{
	{llm.ProviderGemini, func(k string) llm.Provider { return llm.NewGeminiProvider(k) }},
	{llm.ProviderOpenAI, func(k string) llm.Provider { return llm.NewOpenAIProvider(k) }},
	{llm.ProviderAnthropic, func(k string) llm.Provider { return llm.NewAnthropicProvider(k) }},
	{llm.ProviderXAI, func(k string) llm.Provider { return llm.NewXAIProvider(k) }},
	{llm.ProviderOpenRouter, func(k string) llm.Provider { return llm.NewOpenRouterProvider(k) }},
}

// BuildRegistry registers every provider whose credentials are
// configured in the environment. A provider with no API key is skipped:
// absence from the registry is what "unavailable" means.
func BuildRegistry(settings config.Settings) (*llm.Registry, error) {
	registry := llm.NewRegistry(settings.RestrictionPolicy())
	configured := 0
	for _, pc := range providerConstructors {
		key := config.APIKeyFor(pc.ptype)
		if key == "" {
			continue
		}
		if err := registry.Register(pc.build(key)); err != nil {
			return nil, fmt.Errorf("registering %s: %w", pc.ptype, err)
		}
		configured++
	}
	if configured == 0 {
		return nil, fmt.Errorf("no provider API keys configured (set at least one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, XAI_API_KEY, OPENROUTER_API_KEY)")
	}
	return registry, nil
}

// BuildTools constructs the tool registry with the shared dependencies.
func BuildTools(deps tools.Deps) (*tools.Registry, error) {
	registry := tools.NewRegistry()
	all := []tools.Tool{
		tools.NewChatTool(deps),
		tools.NewListModelsTool(deps),
		tools.NewDebugTool(deps),
		tools.NewCodeReviewTool(deps),
		tools.NewThinkDeepTool(deps),
		tools.NewPlannerTool(deps),
	}
	for _, t := range all {
		if err := registry.Register(t); err != nil {
			return nil, fmt.Errorf("registering tools: %w", err)
		}
	}
	return registry, nil
}

// New creates and configures the MCP server with all tools registered.
//
// The returned cleanup function shuts down the provider transports and
// must be called on shutdown (typically via defer). It is always
// non-nil and safe to call.
func New(settings config.Settings) (*server.MCPServer, func(), error) {
	registry, err := BuildRegistry(settings)
	if err != nil {
		return nil, func() {}, err
	}

	store := storage.NewStore(settings.ConversationTTL, settings.MaxConversationTurns)
	deps := tools.Deps{Registry: registry, Store: store, Settings: settings}

	toolRegistry, err := BuildTools(deps)
	if err != nil {
		return nil, func() {}, err
	}

	s := server.NewMCPServer(
		"conclave",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	d := NewDispatcher(toolRegistry, settings)
	d.RegisterAll(s)

	cleanup := func() {
		if err := registry.Close(); err != nil {
			log.Printf("WARNING: provider shutdown: %v", err)
		}
	}

	for _, p := range registry.Providers() {
		log.Printf("provider configured: %s (%d models)", p.Type(), len(p.Capabilities()))
	}

	return s, cleanup, nil
}

// serverInstructions tells the client how to use the tool catalog.
func serverInstructions() string {
	return `Conclave exposes structured analysis tools backed by multiple AI providers.

Simple tools (chat, listmodels) answer in one call. Workflow tools
(debug, codereview, thinkdeep, planner) drive a multi-step
investigation: call them once per step with step_number/total_steps,
report findings as you go, and set next_step_required=false on the
final step. Except in planner, the final step is validated by a second
expert model unless you set confidence to "certain".

Every successful response carries a continuation_id. Pass it back (to
the same tool or a different one) to continue the conversation with
full context; conversations expire after three hours of inactivity.

Set model to "auto" to let the server pick the best available model for
the task, or name a model or alias from listmodels.`
}
