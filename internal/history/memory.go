package history

import (
	"context"
	"sync"
)

// MemoryStore keeps transcripts in process memory. Transcripts live for the
// process lifetime; maxTurns bounds each one so long-lived sessions cannot
// grow without limit.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
	maxTurns int
}

type memorySession struct {
	mu    sync.Mutex
	turns []Turn
}

// NewMemoryStore creates an in-memory transcript store. maxTurns caps each
// session's transcript, trimming the oldest turns on append; 0 means
// unbounded.
func NewMemoryStore(maxTurns int) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memorySession),
		maxTurns: maxTurns,
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) ([]Turn, error) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := make([]Turn, len(sess.turns))
	copy(out, sess.turns)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, sessionID string, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}

	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.turns = append(sess.turns, turns...)
	if s.maxTurns > 0 && len(sess.turns) > s.maxTurns {
		trimmed := make([]Turn, s.maxTurns)
		copy(trimmed, sess.turns[len(sess.turns)-s.maxTurns:])
		sess.turns = trimmed
	}
	return nil
}

// session returns the transcript for the given id, creating it on first use.
func (s *MemoryStore) session(sessionID string) *memorySession {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[sessionID]; ok {
		return sess
	}
	sess = &memorySession{}
	s.sessions[sessionID] = sess
	return sess
}
