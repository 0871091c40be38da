// History Builder - reconstructs prompt history from a thread under a
// token budget.
//
// Information Hiding:
// - Newest-first file deduplication across turns
// - Age-based eviction when the budget runs out
// - Coarse token accounting via internal/tokens
//
// The walk is newest-to-oldest so the most recent context survives when
// the budget is tight; retained items are re-ordered chronologically
// for the outgoing prompt.

package storage

import (
	"os"

	"github.com/richinex/conclave/internal/tokens"
	"github.com/richinex/conclave/llm"
)

// turnOverheadTokens approximates per-message framing cost.
const turnOverheadTokens = 4

// EmbeddedFile is one file body retained by the history builder.
type EmbeddedFile struct {
	Path    string
	Content string
	Tokens  int
}

// History is the reconstructed context for a continuation call.
type History struct {
	// Messages are the retained turns in chronological order.
	Messages []llm.ChatMessage

	// Files are the deduplicated file bodies in chronological order of
	// their newest reference.
	Files []EmbeddedFile

	// TokensUsed is the estimated budget actually consumed.
	TokensUsed int
}

// FilePaths returns the paths of the embedded files.
func (h History) FilePaths() []string {
	paths := make([]string, len(h.Files))
	for i, f := range h.Files {
		paths[i] = f.Path
	}
	return paths
}

// BuildHistory reconstructs the prompt history for a thread within a
// token budget. A missing or expired thread yields an empty history,
// not an error - continuations recover by starting fresh.
//
// Messages are budgeted before files and are never truncated: each turn
// is kept whole or dropped with everything older. When a file path
// appears in multiple turns only the newest reference is kept, since it
// reflects the caller's latest edits.
func (s *Store) BuildHistory(threadID string, budget int) History {
	thread, ok := s.Get(threadID)
	if !ok {
		return History{}
	}

	var h History
	used := 0

	// Messages, newest first; stop at the first turn that overflows.
	kept := 0
	for i := len(thread.Turns) - 1; i >= 0; i-- {
		turn := thread.Turns[i]
		cost := tokens.Estimate(turn.Content) + turnOverheadTokens
		if used+cost > budget {
			break
		}
		used += cost
		kept++
	}
	first := len(thread.Turns) - kept
	for _, turn := range thread.Turns[first:] {
		h.Messages = append(h.Messages, llm.ChatMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}

	// Files, newest reference wins; evict oldest by stopping at the
	// first file that no longer fits.
	seen := make(map[string]bool)
	var files []EmbeddedFile
	budgetReached := false
	for i := len(thread.Turns) - 1; i >= 0 && !budgetReached; i-- {
		for _, path := range thread.Turns[i].Files {
			if seen[path] {
				continue
			}
			seen[path] = true
			data, err := os.ReadFile(path)
			if err != nil {
				// Unreadable files are dropped; the newest reference
				// still shadows older ones.
				continue
			}
			cost := tokens.Estimate(string(data)) + tokens.Estimate(path)
			if used+cost > budget {
				// Everything older is evicted with it.
				budgetReached = true
				break
			}
			used += cost
			files = append(files, EmbeddedFile{
				Path:    path,
				Content: string(data),
				Tokens:  cost,
			})
		}
	}
	// files was collected newest-first; flip to chronological.
	for i := len(files) - 1; i >= 0; i-- {
		h.Files = append(h.Files, files[i])
	}

	h.TokensUsed = used
	return h
}

// EffectiveBudget bounds a requested history budget by the headroom the
// target model needs for its own output.
func EffectiveBudget(budget int, capability llm.ModelCapability, safetyMargin int) int {
	headroom := capability.ContextWindow - capability.MaxOutputTokens - safetyMargin
	if headroom < 0 {
		headroom = 0
	}
	if budget > headroom {
		return headroom
	}
	return budget
}
