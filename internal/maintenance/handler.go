package maintenance

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"secretario/internal/platform/middleware"
	"secretario/pkg/httputil"
)

// Handler exposes the retention sweep to admins.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/maintenance/sweep", h.handleSweep)
}

func (h *Handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.Sweep(ctx, time.Now().UTC())
	if err != nil {
		h.logger.ErrorContext(ctx, "retention sweep failed",
			"request_id", middleware.GetRequestID(ctx), "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
