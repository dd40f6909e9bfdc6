package publisher

import "context"

// Filter narrows publisher listings.
type Filter struct {
	// Group selects one field-service group; 0 means all groups.
	Group int
	// Type selects one publisher type; 0 means all types.
	Type Type
}

// Store is the persistence boundary for publishers. Upsert keys on the
// (given name, family name) pair so repeated imports stay idempotent.
type Store interface {
	Upsert(ctx context.Context, p *Publisher) error
	FindByID(ctx context.Context, id int64) (*Publisher, error)
	FindByName(ctx context.Context, given, family string) (*Publisher, error)
	List(ctx context.Context, filter Filter) ([]*Publisher, error)
	Delete(ctx context.Context, id int64) error
}
