package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"secretario/internal/platform/middleware"
)

// Recorder is the domain-facing audit hook. Writes are fail-open: a broken
// outbox must never block the record-keeping operation itself, so failures
// are logged and dropped.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record appends one event, stamping actor and request id from the request
// context when present.
func (r *Recorder) Record(ctx context.Context, action, subject string) {
	e := Event{
		ID:        uuid.New(),
		Action:    action,
		Subject:   subject,
		ActorID:   middleware.GetUserID(ctx),
		RequestID: middleware.GetRequestID(ctx),
		Timestamp: time.Now().UTC(),
	}
	if err := r.store.Append(ctx, e); err != nil && r.logger != nil {
		r.logger.ErrorContext(ctx, "audit append failed", "action", action, "error", err)
	}
}
