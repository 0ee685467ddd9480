package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/godbotdev/godbot/internal/model/chat"
)

// InsertSession persists a new session record.
func (s *Store) InsertSession(ctx context.Context, session chat.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, name, persona_id, created_at, updated_at, message_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`, session.ID, session.Name, session.PersonaID,
		session.CreatedAt.UnixNano(), session.UpdatedAt.UnixNano(), session.MessageCount)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by identifier.
func (s *Store) GetSession(ctx context.Context, id string) (chat.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, persona_id, created_at, updated_at, message_count
		FROM sessions
		WHERE id = ?
	`, id)

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return chat.Session{}, ErrNotFound
	}
	if err != nil {
		return chat.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// ListSessions returns up to limit sessions, newest-updated first.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]chat.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, persona_id, created_at, updated_at, message_count
		FROM sessions
		ORDER BY updated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]chat.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// TouchSession refreshes a session's updated_at and adds one user/assistant
// exchange to its message count.
func (s *Store) TouchSession(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET updated_at = ?, message_count = message_count + 2
		WHERE id = ?
	`, at.UnixNano(), id)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// DeleteSession removes a session together with all of its messages.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete session messages: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (chat.Session, error) {
	var (
		session   chat.Session
		personaID sql.NullString
		created   int64
		updated   int64
	)
	err := row.Scan(&session.ID, &session.Name, &personaID, &created, &updated, &session.MessageCount)
	if err != nil {
		return chat.Session{}, err
	}
	session.PersonaID = personaID.String
	session.CreatedAt = time.Unix(0, created).UTC()
	session.UpdatedAt = time.Unix(0, updated).UTC()
	return session, nil
}
