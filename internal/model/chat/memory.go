package chat

import "time"

// MemoryItem is an importance-ranked note attached to a session. It lives
// beside the message log and is never derived from chat traffic; callers
// create items explicitly through the memory endpoint.
type MemoryItem struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Content    string    `json:"content"`
	Importance float64   `json:"importance"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
}
