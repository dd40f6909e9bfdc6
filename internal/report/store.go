package report

import (
	"context"
	"time"
)

// Store is the persistence boundary for monthly reports. Upsert keys on the
// (publisher, month) natural key; ranges are [from, to) on the month column.
type Store interface {
	Upsert(ctx context.Context, r *Report) error
	FindByKey(ctx context.Context, publisherID int64, month time.Time) (*Report, error)
	ListByMonth(ctx context.Context, month time.Time) ([]*Report, error)
	ListByPublisherRange(ctx context.Context, publisherID int64, from, to time.Time) ([]*Report, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*Report, error)
	Delete(ctx context.Context, id int64) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
