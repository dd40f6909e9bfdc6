package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	drainInterval = 5 * time.Second
	drainBatch    = 100
)

// Worker drains the outbox to the publisher. Failed batches stay unpublished
// and are retried on the next tick.
type Worker struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
}

func NewWorker(store Store, publisher Publisher, logger *slog.Logger) *Worker {
	return &Worker{store: store, publisher: publisher, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.drain(ctx); err != nil && w.logger != nil {
				w.logger.ErrorContext(ctx, "outbox drain failed", "error", err)
			}
		}
	}
}

func (w *Worker) drain(ctx context.Context) error {
	for {
		entries, err := w.store.ListUnpublished(ctx, drainBatch)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		if err := w.publisher.Publish(ctx, entries); err != nil {
			return err
		}
		ids := make([]uuid.UUID, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		if err := w.store.MarkPublished(ctx, ids); err != nil {
			return err
		}
		if len(entries) < drainBatch {
			return nil
		}
	}
}
