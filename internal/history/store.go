// Package history keeps per-session conversation transcripts.
package history

import (
	"context"
	"sync"
)

// Role identifies the author of a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single entry in a session transcript.
type Turn struct {
	Role    Role
	Content string
}

// Store maps session identifiers to ordered, append-only transcripts.
// Unknown session ids resolve to an empty transcript (get-or-create); a
// missing session is never an error.
type Store interface {
	// Get returns a snapshot of the transcript for the given session,
	// oldest turn first.
	Get(ctx context.Context, sessionID string) ([]Turn, error)

	// Append atomically adds the given turns to the session transcript.
	// Appends for the same session are serialized; appends for different
	// sessions do not block each other.
	Append(ctx context.Context, sessionID string, turns ...Turn) error
}

// sessionLocks hands out one mutex per session id so appends are serialized
// per session without a global lock around the whole store.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

func (s *sessionLocks) get(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}
