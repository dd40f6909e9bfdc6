package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"secretario/pkg/platform/sentinel"
)

// InMemoryStore mirrors the postgres store's date-keyed upsert for tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*Attendance
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, rows: make(map[int64]*Attendance)}
}

func (s *InMemoryStore) Upsert(_ context.Context, a *Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.Normalize()
	now := time.Now()
	for _, existing := range s.rows {
		if existing.HeldOn.Equal(a.HeldOn) {
			id, created := existing.ID, existing.CreatedAt
			*existing = *a
			existing.ID = id
			existing.CreatedAt = created
			existing.UpdatedAt = now
			a.ID = id
			return nil
		}
	}
	cp := *a
	cp.ID = s.nextID
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.nextID++
	s.rows[cp.ID] = &cp
	a.ID = cp.ID
	return nil
}

func (s *InMemoryStore) FindByDate(_ context.Context, heldOn time.Time) (*Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.rows {
		if a.HeldOn.Equal(heldOn) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListRange(_ context.Context, from, to time.Time) ([]*Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Attendance
	for _, a := range s.rows {
		if !a.HeldOn.Before(from) && a.HeldOn.Before(to) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HeldOn.Before(out[j].HeldOn) })
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

func (s *InMemoryStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, a := range s.rows {
		if a.HeldOn.Before(cutoff) {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}
