package profilestore

import (
	"context"
	"sync"
)

// InMemoryStore keeps profile documents in process memory.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[string]map[string]string)}
}

func (s *InMemoryStore) UserData(_ context.Context, userID string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefs := make(map[string]string, len(s.docs[userID]))
	for k, v := range s.docs[userID] {
		prefs[k] = v
	}
	return Document{UserID: userID, Preferences: prefs}, nil
}

func (s *InMemoryStore) SavePreferences(_ context.Context, userID string, prefs map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.docs[userID]
	if !ok {
		stored = make(map[string]string, len(prefs))
		s.docs[userID] = stored
	}
	for k, v := range prefs {
		stored[k] = v
	}
	return nil
}

func (s *InMemoryStore) Close() error { return nil }
