package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gamemate-ai/gamemate/internal/db"
)

// SQLiteStore persists transcripts so they survive process restarts.
type SQLiteStore struct {
	db       *db.DB
	locks    *sessionLocks
	maxTurns int
}

// NewSQLiteStore creates a transcript store backed by the given database.
// maxTurns caps each session's transcript; 0 means unbounded.
func NewSQLiteStore(database *db.DB, maxTurns int) *SQLiteStore {
	return &SQLiteStore{
		db:       database,
		locks:    newSessionLocks(),
		maxTurns: maxTurns,
	}
}

func (s *SQLiteStore) Get(ctx context.Context, sessionID string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content FROM chat_messages WHERE session_id = ? ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying transcript: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.Role, &t.Content); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

func (s *SQLiteStore) Append(ctx context.Context, sessionID string, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}

	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO chat_sessions (id, created_at, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		sessionID, now, now,
	); err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}

	var seq int
	if err := tx.QueryRow(
		`SELECT COALESCE(MAX(seq), 0) FROM chat_messages WHERE session_id = ?`,
		sessionID,
	).Scan(&seq); err != nil {
		return fmt.Errorf("reading sequence: %w", err)
	}

	for _, t := range turns {
		seq++
		if _, err := tx.Exec(
			`INSERT INTO chat_messages (id, session_id, seq, role, content, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), sessionID, seq, string(t.Role), t.Content, now,
		); err != nil {
			return fmt.Errorf("inserting turn: %w", err)
		}
	}

	if s.maxTurns > 0 {
		if _, err := tx.Exec(
			`DELETE FROM chat_messages WHERE session_id = ? AND seq <= ?`,
			sessionID, seq-s.maxTurns,
		); err != nil {
			return fmt.Errorf("trimming transcript: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transcript append: %w", err)
	}
	return nil
}
