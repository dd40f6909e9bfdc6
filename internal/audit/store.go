package audit

import (
	"context"

	"github.com/google/uuid"
)

// Store is the outbox boundary. Append joins the caller's transaction when
// one is in context, so a rolled-back mutation never leaves an audit row.
type Store interface {
	Append(ctx context.Context, e Event) error
	ListUnpublished(ctx context.Context, limit int) ([]Entry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}
