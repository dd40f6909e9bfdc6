package reference

import (
	"context"
	"sync"
)

// InMemoryStore backs tests and keeps the same seed-once semantics.
type InMemoryStore struct {
	mu             sync.RWMutex
	privileges     []Entry
	publisherTypes []Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) SeedDefaults(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.privileges = merge(s.privileges, defaultPrivileges())
	s.publisherTypes = merge(s.publisherTypes, defaultPublisherTypes())
	return nil
}

func merge(existing, defaults []Entry) []Entry {
	seen := make(map[int]struct{}, len(existing))
	for _, e := range existing {
		seen[e.ID] = struct{}{}
	}
	for _, d := range defaults {
		if _, ok := seen[d.ID]; !ok {
			existing = append(existing, d)
		}
	}
	return existing
}

func (s *InMemoryStore) ListPrivileges(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry(nil), s.privileges...), nil
}

func (s *InMemoryStore) ListPublisherTypes(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry(nil), s.publisherTypes...), nil
}
