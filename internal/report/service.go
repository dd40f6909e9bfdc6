package report

import (
	"context"
	"errors"
	"time"

	"secretario/internal/publisher"
	"secretario/internal/serviceyear"
	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/platform/sentinel"
)

// Auditor records domain mutations. Nil-safe at every call site so batch
// paths work without an audit pipeline wired in.
type Auditor interface {
	Record(ctx context.Context, action, subject string)
}

// Service orchestrates report writes and month listings.
type Service struct {
	store      Store
	publishers publisher.Store
	auditor    Auditor
}

func NewService(store Store, publishers publisher.Store, auditor Auditor) *Service {
	return &Service{store: store, publishers: publishers, auditor: auditor}
}

// Save validates and upserts one monthly report.
func (s *Service) Save(ctx context.Context, r *Report) (*Report, error) {
	r.Normalize()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.publishers.FindByID(ctx, r.PublisherID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "publisher not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "load publisher", err)
	}
	// Hours belong to pioneer months only; stray values on publisher rows
	// are dropped rather than rejected (imported sheets carry them).
	if !r.Type.ReportsHours() {
		r.Hours = 0
		r.SupplementaryHours = 0
	}
	if err := s.store.Upsert(ctx, r); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "save report", err)
	}
	if s.auditor != nil {
		s.auditor.Record(ctx, "report.saved", r.Month.Format("2006-01"))
	}
	return r, nil
}

// Month lists every report for one calendar month.
func (s *Service) Month(ctx context.Context, month time.Time) ([]*Report, error) {
	rows, err := s.store.ListByMonth(ctx, serviceyear.FirstOfMonth(month))
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list reports", err)
	}
	if rows == nil {
		rows = []*Report{}
	}
	return rows, nil
}

// Delete removes a single report row.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "report not found")
		}
		return dErrors.Wrap(dErrors.CodeInternal, "delete report", err)
	}
	if s.auditor != nil {
		s.auditor.Record(ctx, "report.deleted", "")
	}
	return nil
}
