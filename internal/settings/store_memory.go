package settings

import (
	"context"
	"sort"
	"sync"
	"time"

	"secretario/pkg/platform/sentinel"
)

// InMemoryStore backs tests.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows map[string]*Setting
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[string]*Setting)}
}

func (s *InMemoryStore) Get(_ context.Context, key string) (*Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	setting, ok := s.rows[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *setting
	return &cp, nil
}

func (s *InMemoryStore) Set(_ context.Context, setting *Setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	setting.UpdatedAt = time.Now()
	cp := *setting
	s.rows[cp.Key] = &cp
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Setting, 0, len(s.rows))
	for _, setting := range s.rows {
		cp := *setting
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.rows, key)
	return nil
}
