package memory

import (
	"context"
	"time"
)

// Role tags who produced an episodic entry.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Entry is one record in a user's episodic log.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists and retrieves the episodic conversation log. Entries are
// append-only apart from explicit age-based pruning.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, userID string, limit int) ([]Entry, error)
	CountBetween(ctx context.Context, userID string, from, to time.Time) (int, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)
	Close() error
}
