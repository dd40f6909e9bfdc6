package publisher

import (
	"context"
	"sort"
	"sync"
	"time"

	"secretario/pkg/platform/sentinel"
)

// InMemoryStore keeps publishers in a map. It backs unit tests and mirrors
// the postgres store's natural-key upsert semantics.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*Publisher
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, rows: make(map[int64]*Publisher)}
}

func (s *InMemoryStore) Upsert(_ context.Context, p *Publisher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, existing := range s.rows {
		if existing.GivenName == p.GivenName && existing.FamilyName == p.FamilyName {
			id, created := existing.ID, existing.CreatedAt
			*existing = *p
			existing.ID = id
			existing.CreatedAt = created
			existing.UpdatedAt = now
			p.ID = id
			return nil
		}
	}
	cp := *p
	cp.ID = s.nextID
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.nextID++
	s.rows[cp.ID] = &cp
	p.ID = cp.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Publisher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryStore) FindByName(_ context.Context, given, family string) (*Publisher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.rows {
		if p.GivenName == given && p.FamilyName == family {
			cp := *p
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context, filter Filter) ([]*Publisher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Publisher
	for _, p := range s.rows {
		if filter.Group != 0 && p.Group != filter.Group {
			continue
		}
		if filter.Type != 0 && p.Type != filter.Type {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FamilyName != out[j].FamilyName {
			return out[i].FamilyName < out[j].FamilyName
		}
		return out[i].GivenName < out[j].GivenName
	})
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}
