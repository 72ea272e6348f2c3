package audit

import (
	"context"
	"sync"
)

// MemoryStore keeps the audit trail in process memory. Suitable for tests
// and development; a durable sink can replace it behind the Store interface.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) ListByDonation(_ context.Context, donationID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.DonationID == donationID {
			out = append(out, e)
		}
	}
	return out, nil
}
