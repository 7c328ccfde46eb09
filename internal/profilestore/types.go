package profilestore

import "context"

// Document is the externally stored per-user profile data.
type Document struct {
	UserID      string            `json:"user_id"`
	Preferences map[string]string `json:"preferences"`
}

// Store persists user preference/profile documents. The store is optional:
// callers must treat an empty Document as a normal outcome.
type Store interface {
	UserData(ctx context.Context, userID string) (Document, error)
	SavePreferences(ctx context.Context, userID string, prefs map[string]string) error
	Close() error
}
