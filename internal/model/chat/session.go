package chat

import "time"

// Session groups an ordered conversation thread. Sessions are created lazily
// on the first chat call that references an unknown identifier.
type Session struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PersonaID    string    `json:"persona_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// DefaultSessionName is assigned to sessions minted by the chat pipeline.
const DefaultSessionName = "New Session"

// NewSession builds a fresh session bound to an optional persona. The persona
// identifier is stored as-is even when it resolves to nothing; resolution
// failures are handled at use time, not at write time.
func NewSession(id, personaID string) Session {
	now := time.Now().UTC()
	return Session{
		ID:        id,
		Name:      DefaultSessionName,
		PersonaID: personaID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
