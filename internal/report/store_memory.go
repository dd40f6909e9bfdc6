package report

import (
	"context"
	"sort"
	"sync"
	"time"

	"secretario/pkg/platform/sentinel"
)

// InMemoryStore mirrors the postgres store's upsert semantics for tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*Report
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, rows: make(map[int64]*Report)}
}

func (s *InMemoryStore) Upsert(_ context.Context, r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.Normalize()
	now := time.Now()
	for _, existing := range s.rows {
		if existing.PublisherID == r.PublisherID && existing.Month.Equal(r.Month) {
			id, created := existing.ID, existing.CreatedAt
			*existing = *r
			existing.ID = id
			existing.CreatedAt = created
			existing.UpdatedAt = now
			r.ID = id
			return nil
		}
	}
	cp := *r
	cp.ID = s.nextID
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.nextID++
	s.rows[cp.ID] = &cp
	r.ID = cp.ID
	return nil
}

func (s *InMemoryStore) FindByKey(_ context.Context, publisherID int64, month time.Time) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rows {
		if r.PublisherID == publisherID && r.Month.Equal(month) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListByMonth(_ context.Context, month time.Time) ([]*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Report
	for _, r := range s.rows {
		if r.Month.Equal(month) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sortByMonth(out)
	return out, nil
}

func (s *InMemoryStore) ListByPublisherRange(_ context.Context, publisherID int64, from, to time.Time) ([]*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Report
	for _, r := range s.rows {
		if r.PublisherID == publisherID && !r.Month.Before(from) && r.Month.Before(to) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sortByMonth(out)
	return out, nil
}

func (s *InMemoryStore) ListRange(_ context.Context, from, to time.Time) ([]*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Report
	for _, r := range s.rows {
		if !r.Month.Before(from) && r.Month.Before(to) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sortByMonth(out)
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
	for id, r := range s.rows {
		if r.Month.Before(cutoff) {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}

func sortByMonth(rows []*Report) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Month.Equal(rows[j].Month) {
			return rows[i].Month.Before(rows[j].Month)
		}
		return rows[i].PublisherID < rows[j].PublisherID
	})
}
