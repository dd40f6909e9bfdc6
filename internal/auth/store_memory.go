package auth

import (
	"context"
	"sync"
	"time"

	"secretario/pkg/platform/sentinel"
)

// InMemoryStore backs tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[string]*User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, rows: make(map[string]*User)}
}

func (s *InMemoryStore) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[u.Username]; ok {
		return sentinel.ErrConflict
	}
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	s.nextID++
	cp := *u
	s.rows[u.Username] = &cp
	return nil
}

func (s *InMemoryStore) FindByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.rows[username]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}
