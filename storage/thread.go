// Conversation thread data model.
//
// A Thread is an ordered sequence of turns identified by a UUID. The
// thread ID doubles as the continuation ID handed back to clients, which
// is what bridges the stateless request protocol with multi-turn,
// cross-tool workflows.

package storage

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one user or assistant message within a thread.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	ToolName  string    `json:"tool_name"`
	ModelName string    `json:"model_name,omitempty"`
	Files     []string  `json:"files_referenced,omitempty"`
	Images    []string  `json:"images_referenced,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// clone returns a deep copy so stored turns cannot be mutated externally.
func (t Turn) clone() Turn {
	out := t
	out.Files = append([]string(nil), t.Files...)
	out.Images = append([]string(nil), t.Images...)
	return out
}

// Thread is a conversation identified by a UUID v4.
type Thread struct {
	ID string `json:"thread_id"`

	// ParentID is set when a conversation forks; it is a lookup key
	// into the store, never an owning reference.
	ParentID string `json:"parent_thread_id,omitempty"`

	ToolName       string    `json:"tool_name"`
	InitialRequest string    `json:"initial_request"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	Turns          []Turn    `json:"turns"`
}

// clone returns a deep copy of the thread.
func (t Thread) clone() Thread {
	out := t
	out.Turns = make([]Turn, len(t.Turns))
	for i, turn := range t.Turns {
		out.Turns[i] = turn.clone()
	}
	return out
}

// IsValidThreadID reports whether s is syntactically a UUID v4. Lookups
// with anything else are rejected before touching the store.
func IsValidThreadID(s string) bool {
	u, err := uuid.Parse(s)
	return err == nil && u.Version() == 4
}
