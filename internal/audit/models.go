// Package audit records domain mutations through a transactional outbox.
// Events are appended in the caller's transaction and shipped to Kafka by a
// background worker; Kafka is the long-term audit trail.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Event is one recorded domain action.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject"`
	ActorID   string    `json:"actor_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Entry is one outbox row awaiting publication.
type Entry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}
