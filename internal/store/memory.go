package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/godbotdev/godbot/internal/model/chat"
)

// InsertMemory stores one memory item.
func (s *Store) InsertMemory(ctx context.Context, item chat.MemoryItem) error {
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode memory tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO memory (id, session_id, content, importance, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, item.ID, item.SessionID, item.Content, item.Importance,
		string(tags), item.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert memory item: %w", err)
	}
	return nil
}

// MemoryBySession returns up to limit memory items for a session, highest
// importance first.
func (s *Store) MemoryBySession(ctx context.Context, sessionID string, limit int) ([]chat.MemoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, content, importance, tags, created_at
		FROM memory
		WHERE session_id = ?
		ORDER BY importance DESC
		LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query memory items: %w", err)
	}
	defer rows.Close()

	items := make([]chat.MemoryItem, 0)
	for rows.Next() {
		var (
			item    chat.MemoryItem
			tags    sql.NullString
			created int64
		)
		if err := rows.Scan(&item.ID, &item.SessionID, &item.Content, &item.Importance, &tags, &created); err != nil {
			return nil, fmt.Errorf("failed to scan memory item: %w", err)
		}
		if tags.Valid && tags.String != "" && tags.String != "null" {
			if err := json.Unmarshal([]byte(tags.String), &item.Tags); err != nil {
				return nil, fmt.Errorf("failed to decode memory tags: %w", err)
			}
		}
		item.CreatedAt = time.Unix(0, created).UTC()
		items = append(items, item)
	}
	return items, rows.Err()
}
