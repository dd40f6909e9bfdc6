package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore backs tests with the same publish bookkeeping.
type InMemoryStore struct {
	mu        sync.Mutex
	entries   []Entry
	published map[uuid.UUID]bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{published: make(map[uuid.UUID]bool)}
}

func (s *InMemoryStore) Append(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	s.entries = append(s.entries, Entry{
		ID:            e.ID,
		AggregateType: "audit",
		AggregateID:   e.Subject,
		EventType:     e.Action,
		Payload:       payload,
		CreatedAt:     e.Timestamp,
	})
	return nil
}

func (s *InMemoryStore) ListUnpublished(_ context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries {
		if s.published[e.ID] {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *InMemoryStore) MarkPublished(_ context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.published[id] = true
	}
	return nil
}
