// Package storage provides the in-memory conversation store.
//
// Information Hiding:
// - Map storage structure hidden from users
// - Thread-safe access via RWMutex hidden behind the API
// - TTL sweeping is opportunistic and amortized into every access
//
// All mutations are plain in-memory operations and are never held
// across a provider call, so a store-wide mutex keeps every thread's
// turn sequence serialized without blocking I/O.

package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTTL is how long an idle thread survives.
	DefaultTTL = 3 * time.Hour

	// DefaultMaxTurns caps the turns per thread.
	DefaultMaxTurns = 20
)

var (
	// ErrThreadNotFound means the thread ID is unknown or expired.
	ErrThreadNotFound = errors.New("thread not found")

	// ErrThreadCapacityExceeded means the thread is at its turn cap.
	// The thread is left unchanged; the client must start a new one.
	ErrThreadCapacityExceeded = errors.New("thread capacity exceeded")
)

// Store is a process-global mapping from thread ID to conversation.
// Data is lost when the process terminates.
type Store struct {
	mu       sync.RWMutex
	threads  map[string]*Thread
	ttl      time.Duration
	maxTurns int
	now      func() time.Time // injectable for tests
}

// NewStore creates a store with the given idle TTL and per-thread turn
// cap. Non-positive arguments fall back to the defaults.
func NewStore(ttl time.Duration, maxTurns int) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Store{
		threads:  make(map[string]*Thread),
		ttl:      ttl,
		maxTurns: maxTurns,
		now:      time.Now,
	}
}

// NewThread allocates a fresh thread and returns its ID. parentID links
// a forked conversation back to its origin and may be empty.
func (s *Store) NewThread(toolName, parentID, initialRequest string) string {
	id := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.threads[id] = &Thread{
		ID:             id,
		ParentID:       parentID,
		ToolName:       toolName,
		InitialRequest: initialRequest,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	return id
}

// Get returns a deep copy of a thread. The second return is false for
// syntactically invalid IDs and for unknown or expired threads.
func (s *Store) Get(id string) (Thread, bool) {
	if !IsValidThreadID(id) {
		return Thread{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())
	t, ok := s.threads[id]
	if !ok {
		return Thread{}, false
	}
	return t.clone(), true
}

// Append adds a turn to a thread and refreshes its access time.
// Fails with ErrThreadNotFound for unknown IDs and with
// ErrThreadCapacityExceeded when the turn cap is reached; in both cases
// the store is left unchanged.
func (s *Store) Append(id string, turn Turn) error {
	if !IsValidThreadID(id) {
		return ErrThreadNotFound
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	t, ok := s.threads[id]
	if !ok {
		return ErrThreadNotFound
	}
	if len(t.Turns) >= s.maxTurns {
		return ErrThreadCapacityExceeded
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = now
	}
	t.Turns = append(t.Turns, turn.clone())
	t.LastAccessedAt = now
	return nil
}

// Len returns the number of live threads.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())
	return len(s.threads)
}

// Sweep removes expired threads and returns how many were dropped.
// Sweeping also happens opportunistically on every store access; this
// entry point exists for callers that want an explicit periodic sweep.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

// sweepLocked drops threads idle past the TTL. Caller holds s.mu.
func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for id, t := range s.threads {
		if now.Sub(t.LastAccessedAt) > s.ttl {
			delete(s.threads, id)
			removed++
		}
	}
	return removed
}
