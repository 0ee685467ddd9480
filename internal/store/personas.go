package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/godbotdev/godbot/internal/model/persona"
)

// InsertPersona stores a custom persona. No uniqueness check runs against the
// built-in set; a colliding record is stored but shadowed at resolve time.
func (s *Store) InsertPersona(ctx context.Context, p persona.Persona) error {
	traits, err := json.Marshal(p.Traits)
	if err != nil {
		return fmt.Errorf("failed to encode persona traits: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO personas (id, name, description, system_prompt, emotional_state, traits, icon, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Description, p.SystemPrompt, p.EmotionalState,
		string(traits), p.Icon, p.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert persona: %w", err)
	}
	return nil
}

// FindPersona retrieves a custom persona by identifier.
func (s *Store) FindPersona(ctx context.Context, id string) (persona.Persona, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, system_prompt, emotional_state, traits, icon, created_at
		FROM personas
		WHERE id = ?
	`, id)

	p, err := scanPersona(row)
	if errors.Is(err, sql.ErrNoRows) {
		return persona.Persona{}, persona.ErrNotFound
	}
	if err != nil {
		return persona.Persona{}, fmt.Errorf("failed to find persona: %w", err)
	}
	return p, nil
}

// ListPersonas returns up to limit custom personas in creation order.
func (s *Store) ListPersonas(ctx context.Context, limit int) ([]persona.Persona, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, system_prompt, emotional_state, traits, icon, created_at
		FROM personas
		ORDER BY created_at ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list personas: %w", err)
	}
	defer rows.Close()

	personas := make([]persona.Persona, 0)
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan persona: %w", err)
		}
		personas = append(personas, p)
	}
	return personas, rows.Err()
}

func scanPersona(row rowScanner) (persona.Persona, error) {
	var (
		p       persona.Persona
		traits  sql.NullString
		created int64
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.SystemPrompt, &p.EmotionalState, &traits, &p.Icon, &created)
	if err != nil {
		return persona.Persona{}, err
	}
	if traits.Valid && traits.String != "" && traits.String != "null" {
		if err := json.Unmarshal([]byte(traits.String), &p.Traits); err != nil {
			return persona.Persona{}, fmt.Errorf("failed to decode persona traits: %w", err)
		}
	}
	p.CreatedAt = time.Unix(0, created).UTC()
	return p, nil
}
