package publisher

import (
	"context"
	"errors"

	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/platform/sentinel"
)

// Service keeps publisher orchestration out of handlers: validation, natural
// key lookups and domain error translation live here.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Save validates and upserts a publisher by its (given, family) natural key.
func (s *Service) Save(ctx context.Context, p *Publisher) (*Publisher, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Sex != SexMale && p.Sex != SexFemale {
		return nil, dErrors.New(dErrors.CodeBadRequest, "sex must be M or F")
	}
	if err := s.store.Upsert(ctx, p); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "save publisher", err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Publisher, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "publisher not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "load publisher", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Publisher, error) {
	out, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list publishers", err)
	}
	if out == nil {
		out = []*Publisher{}
	}
	return out, nil
}

// ResolveDisplayName finds a publisher from an "Apellidos, Nombre" cell.
func (s *Service) ResolveDisplayName(ctx context.Context, display string) (*Publisher, error) {
	given, family := SplitDisplayName(display)
	p, err := s.store.FindByName(ctx, given, family)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "publisher not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "resolve publisher", err)
	}
	return p, nil
}

// Delete removes a publisher. Reports cascade at the store level; this is
// the explicit admin action, never part of an import.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "publisher not found")
		}
		return dErrors.Wrap(dErrors.CodeInternal, "delete publisher", err)
	}
	return nil
}
