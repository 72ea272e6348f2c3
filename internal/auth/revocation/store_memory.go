package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process denylist used in tests and single-instance
// development runs.
type MemoryStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time)}
}

func (s *MemoryStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryStore) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	expiry, ok := s.revoked[tokenID]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		s.mu.Lock()
		delete(s.revoked, tokenID)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
