package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/richinex/conclave/llm"
	"github.com/richinex/conclave/storage"
)

func TestChatRoundTrip(t *testing.T) {
	deps, fake := testDeps(t, func(call int, req llm.GenerationRequest) (llm.GenerationResult, error) {
		return llm.GenerationResult{
			Content: "the answer is 4", FinishReason: "stop",
			InputTokens: 12, OutputTokens: 6,
			ModelName: req.Model, Provider: llm.ProviderOpenRouter,
		}, nil
	})
	chat := NewChatTool(deps)

	resp, err := chat.Execute(context.Background(), json.RawMessage(`{"prompt": "2+2=?"}`))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(resp.Content, "4") {
		t.Errorf("expected answer containing 4, got %q", resp.Content)
	}
	if !storage.IsValidThreadID(resp.ContinuationID) {
		t.Errorf("expected a UUID continuation_id, got %q", resp.ContinuationID)
	}
	// Auto-mode picks the highest-intelligence candidate.
	if resp.ModelUsed != "unit-thinker" {
		t.Errorf("expected unit-thinker, got %q", resp.ModelUsed)
	}
	if resp.Tokens.Input != 12 || resp.Tokens.Output != 6 {
		t.Errorf("unexpected token counts: %+v", resp.Tokens)
	}

	thread, ok := deps.Store.Get(resp.ContinuationID)
	if !ok {
		t.Fatal("expected the thread to be recorded")
	}
	if len(thread.Turns) != 2 {
		t.Fatalf("expected user+assistant turns, got %d", len(thread.Turns))
	}
	if thread.Turns[0].Role != storage.RoleUser || thread.Turns[1].Role != storage.RoleAssistant {
		t.Error("expected user turn then assistant turn")
	}

	if len(fake.calls) != 1 {
		t.Fatalf("expected one provider call, got %d", len(fake.calls))
	}
	if fake.calls[0].SystemPrompt == "" {
		t.Error("expected the tool system prompt to be set")
	}
}

func TestChatContinuationCarriesHistory(t *testing.T) {
	deps, fake := testDeps(t, func(call int, req llm.GenerationRequest) (llm.GenerationResult, error) {
		content := "noted: 7"
		if call == 1 {
			content = "you told me 7"
		}
		return llm.GenerationResult{Content: content, ModelName: req.Model}, nil
	})
	chat := NewChatTool(deps)

	first, err := chat.Execute(context.Background(), json.RawMessage(`{"prompt": "Remember the number 7"}`))
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	args := fmt.Sprintf(`{"prompt": "What number did I tell you?", "continuation_id": %q}`, first.ContinuationID)
	second, err := chat.Execute(context.Background(), json.RawMessage(args))
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if second.ContinuationID != first.ContinuationID {
		t.Errorf("expected the same continuation_id, got %q and %q", first.ContinuationID, second.ContinuationID)
	}
	if !strings.Contains(second.Content, "7") {
		t.Errorf("expected response containing 7, got %q", second.Content)
	}

	// The second provider call must carry the prior exchange.
	call := fake.calls[1]
	var sawPrior bool
	for _, msg := range call.Messages {
		if strings.Contains(msg.Content, "Remember the number 7") {
			sawPrior = true
		}
	}
	if !sawPrior {
		t.Error("expected hydrated history to include the first prompt")
	}

	thread, _ := deps.Store.Get(first.ContinuationID)
	if len(thread.Turns) != 4 {
		t.Errorf("expected 4 turns after two calls, got %d", len(thread.Turns))
	}
}

func TestChatUnknownContinuationDowngrades(t *testing.T) {
	deps, _ := testDeps(t, nil)
	chat := NewChatTool(deps)

	stale := "3f8f33a0-0b65-4f7e-9f3e-2f4c46a3b001"
	args := fmt.Sprintf(`{"prompt": "hi", "continuation_id": %q}`, stale)
	resp, err := chat.Execute(context.Background(), json.RawMessage(args))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if resp.ContinuationID == stale {
		t.Error("expected a fresh thread, not the stale ID")
	}
	if _, ok := resp.Metadata["continuation_warning"]; !ok {
		t.Error("expected a continuation warning in metadata")
	}
}

func TestChatFailedGenerateLeavesStoreUnchanged(t *testing.T) {
	deps, _ := testDeps(t, func(call int, req llm.GenerationRequest) (llm.GenerationResult, error) {
		return llm.GenerationResult{}, &llm.UpstreamError{
			Provider: llm.ProviderOpenRouter, Status: 500, Retryable: true,
			Err: errors.New("boom"),
		}
	})
	chat := NewChatTool(deps)

	_, err := chat.Execute(context.Background(), json.RawMessage(`{"prompt": "hi"}`))
	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if deps.Store.Len() != 0 {
		t.Errorf("expected no threads after failed generate, got %d", deps.Store.Len())
	}
}

func TestChatExplicitModelAndAlias(t *testing.T) {
	deps, _ := testDeps(t, nil)
	chat := NewChatTool(deps)

	resp, err := chat.Execute(context.Background(), json.RawMessage(`{"prompt": "hi", "model": "QUICK"}`))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if resp.ModelUsed != "unit-quick" {
		t.Errorf("expected alias to resolve to unit-quick, got %q", resp.ModelUsed)
	}
}

func TestChatExplicitEmptyModelRejected(t *testing.T) {
	deps, _ := testDeps(t, nil)
	chat := NewChatTool(deps)

	_, err := chat.Execute(context.Background(), json.RawMessage(`{"prompt": "hi", "model": ""}`))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "model" {
		t.Errorf("expected model field diagnostic, got %q", vErr.Field)
	}
}

func TestChatEmbedsRequestFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("the secret word is heliotrope"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	deps, fake := testDeps(t, nil)
	chat := NewChatTool(deps)

	args := fmt.Sprintf(`{"prompt": "what is the secret word?", "absolute_file_paths": [%q]}`, path)
	resp, err := chat.Execute(context.Background(), json.RawMessage(args))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	last := fake.calls[0].Messages[len(fake.calls[0].Messages)-1]
	if !strings.Contains(last.Content, "heliotrope") {
		t.Error("expected file body embedded in the user message")
	}

	thread, _ := deps.Store.Get(resp.ContinuationID)
	if len(thread.Turns[0].Files) != 1 || thread.Turns[0].Files[0] != path {
		t.Errorf("expected the file recorded on the user turn, got %v", thread.Turns[0].Files)
	}
}

func TestListModelsRendersCatalog(t *testing.T) {
	deps, _ := testDeps(t, nil)
	lm := NewListModelsTool(deps)

	resp, err := lm.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	for _, want := range []string{"unit-thinker", "unit-quick", "thinker", "quick"} {
		if !strings.Contains(resp.Content, want) {
			t.Errorf("expected catalog to mention %q", want)
		}
	}
	if resp.ContinuationID != "" {
		t.Error("listmodels must not open a conversation")
	}
	if resp.Metadata["model_count"] != 2 {
		t.Errorf("expected model_count 2, got %v", resp.Metadata["model_count"])
	}
}
