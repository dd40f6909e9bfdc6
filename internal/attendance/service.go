package attendance

import (
	"context"
	"errors"
	"time"

	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/platform/sentinel"
)

// Service handles attendance writes and range listings.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Save upserts one meeting date's count.
func (s *Service) Save(ctx context.Context, a *Attendance) (*Attendance, error) {
	a.Normalize()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Upsert(ctx, a); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "save attendance", err)
	}
	return a, nil
}

// Range lists meetings in [from, to).
func (s *Service) Range(ctx context.Context, from, to time.Time) ([]*Attendance, error) {
	if !to.After(from) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "range end must be after start")
	}
	out, err := s.store.ListRange(ctx, from, to)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list attendance", err)
	}
	if out == nil {
		out = []*Attendance{}
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "attendance not found")
		}
		return dErrors.Wrap(dErrors.CodeInternal, "delete attendance", err)
	}
	return nil
}
