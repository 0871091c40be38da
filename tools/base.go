// Shared execution plumbing for the Simple and Workflow tool bases:
// model resolution, history hydration, and turn recording.

package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/richinex/conclave/llm"
	"github.com/richinex/conclave/storage"
)

// resolveModel maps an envelope model (explicit name, alias, or "auto")
// to a provider and canonical capability descriptor.
func resolveModel(deps Deps, model string, category llm.Category) (llm.Provider, llm.ModelCapability, error) {
	if llm.IsAuto(model) {
		capability, err := deps.Registry.SelectAuto(category)
		if err != nil {
			return nil, llm.ModelCapability{}, err
		}
		model = capability.ModelName
	}
	return deps.Registry.Resolve(model)
}

// hydration is the result of resolving a continuation ID.
type hydration struct {
	history  storage.History
	threadID string // empty when a fresh thread is needed
	warning  string // set when an unknown/expired ID was downgraded
	embedded map[string]bool
}

// hydrate loads prior context for a continuation. An unknown or expired
// thread is downgraded to a fresh start with a metadata warning rather
// than surfaced as an error.
func hydrate(deps Deps, continuationID string, capability llm.ModelCapability) hydration {
	h := hydration{embedded: make(map[string]bool)}
	if continuationID == "" {
		return h
	}
	thread, ok := deps.Store.Get(continuationID)
	if !ok {
		h.warning = fmt.Sprintf("continuation_id %s is unknown or expired; starting a new conversation", continuationID)
		return h
	}
	budget := storage.EffectiveBudget(
		deps.Settings.MaxHistoryTokens, capability, deps.Settings.HistorySafetyMargin)
	h.history = deps.Store.BuildHistory(continuationID, budget)
	h.threadID = continuationID
	for _, turn := range thread.Turns {
		for _, path := range turn.Files {
			h.embedded[path] = true
		}
	}
	return h
}

// historyMessages converts rebuilt history into provider messages,
// leading with the retained file bodies when there are any.
func historyMessages(h storage.History) []llm.ChatMessage {
	var messages []llm.ChatMessage
	if block := formatHistoryFiles(h.Files); block != "" {
		messages = append(messages, llm.UserMessage(
			"Files referenced earlier in this conversation (latest versions):\n\n"+block))
	}
	messages = append(messages, h.Messages...)
	return messages
}

// recordTurns appends the user and assistant turns for one successful
// call, creating the thread first when this is a fresh conversation.
// Nothing is written before the provider call succeeds, so a failed
// generate leaves the store unchanged.
func recordTurns(deps Deps, threadID, toolName string, user storage.Turn, assistant storage.Turn) (string, error) {
	if threadID == "" {
		threadID = deps.Store.NewThread(toolName, "", user.Content)
	}
	if err := deps.Store.Append(threadID, user); err != nil {
		return "", err
	}
	if err := deps.Store.Append(threadID, assistant); err != nil {
		return "", err
	}
	return threadID, nil
}

// generateWithTimeout runs one provider call under the category's
// wall-clock limit.
func generateWithTimeout(ctx context.Context, deps Deps, provider llm.Provider, category llm.Category, req llm.GenerationRequest) (llm.GenerationResult, error) {
	timeout := deps.Settings.TimeoutFor(category)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return provider.Generate(ctx, req)
}

// temperatureOrDefault picks the request temperature or the configured
// default.
func temperatureOrDefault(deps Deps, t *float64) float64 {
	if t != nil {
		return *t
	}
	return deps.Settings.Temperature
}

// nowStamp returns the shared turn timestamp for one call's records.
func nowStamp() time.Time {
	return time.Now()
}
