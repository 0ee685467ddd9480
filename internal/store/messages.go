package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/godbotdev/godbot/internal/model/chat"
)

// InsertMessage durably stores one message. No dedup, no validation beyond
// the schema's required columns.
func (s *Store) InsertMessage(ctx context.Context, msg chat.Message) error {
	metadata, err := json.Marshal(msg.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode message metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO messages (id, session_id, role, content, persona_id, timestamp, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.SessionID, msg.Role, msg.Content, msg.PersonaID,
		msg.Timestamp.UnixNano(), string(metadata))
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// RecentMessages returns up to limit of the most recent messages for a
// session in ascending chronological order. The fetch runs newest-first so
// truncation keeps the most recent window, then reverses in memory.
func (s *Store) RecentMessages(ctx context.Context, sessionID string, limit int) ([]chat.Message, error) {
	messages, err := s.queryMessages(ctx, `
		SELECT id, session_id, role, content, persona_id, timestamp, metadata
		FROM messages
		WHERE session_id = ?
		ORDER BY timestamp DESC
		LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Messages returns up to limit messages for a session in ascending
// chronological order, truncating from the oldest end.
func (s *Store) Messages(ctx context.Context, sessionID string, limit int) ([]chat.Message, error) {
	return s.queryMessages(ctx, `
		SELECT id, session_id, role, content, persona_id, timestamp, metadata
		FROM messages
		WHERE session_id = ?
		ORDER BY timestamp ASC
		LIMIT ?
	`, sessionID, limit)
}

func (s *Store) queryMessages(ctx context.Context, query string, args ...any) ([]chat.Message, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]chat.Message, 0)
	for rows.Next() {
		var (
			msg       chat.Message
			personaID sql.NullString
			ts        int64
			metadata  sql.NullString
		)
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &personaID, &ts, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.PersonaID = personaID.String
		msg.Timestamp = time.Unix(0, ts).UTC()
		msg.Metadata = map[string]any{}
		if metadata.Valid && metadata.String != "" && metadata.String != "null" {
			if err := json.Unmarshal([]byte(metadata.String), &msg.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode message metadata: %w", err)
			}
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
