package attendance

import (
	"context"
	"time"
)

// Store is the persistence boundary for meeting attendance. Upsert keys on
// the meeting date; ranges are [from, to) on held_on.
type Store interface {
	Upsert(ctx context.Context, a *Attendance) error
	FindByDate(ctx context.Context, heldOn time.Time) (*Attendance, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*Attendance, error)
	Delete(ctx context.Context, id int64) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
