package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore is a simple in-process episodic log for local/dev use.
// A single store-wide mutex serializes all access; operations are short.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string][]Entry)}
}

func (s *InMemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.entries[entry.UserID] = append(s.entries[entry.UserID], entry)
	return nil
}

// Recent returns the newest entries in chronological order. A limit of zero
// or less returns the whole log.
func (s *InMemoryStore) Recent(_ context.Context, userID string, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	arr := s.entries[userID]
	if len(arr) == 0 {
		return nil, nil
	}
	if limit <= 0 || limit > len(arr) {
		limit = len(arr)
	}
	out := make([]Entry, 0, limit)
	for i := len(arr) - limit; i < len(arr); i++ {
		out = append(out, arr[i])
	}
	return out, nil
}

func (s *InMemoryStore) CountBetween(_ context.Context, userID string, from, to time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, e := range s.entries[userID] {
		if !e.CreatedAt.Before(from) && !e.CreatedAt.After(to) {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) PruneBefore(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for userID, arr := range s.entries {
		kept := arr[:0]
		for _, e := range arr {
			if e.CreatedAt.Before(cutoff) {
				pruned++
				continue
			}
			kept = append(kept, e)
		}
		s.entries[userID] = kept
	}
	return pruned, nil
}

func (s *InMemoryStore) Close() error { return nil }
