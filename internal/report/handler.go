package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"secretario/internal/platform/middleware"
	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/httputil"
)

// Handler exposes monthly-report endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Post("/", h.handleSave)
		r.Get("/month/{month}", h.handleMonth)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var rep Report
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	saved, err := h.service.Save(ctx, &rep)
	if err != nil {
		h.logger.WarnContext(ctx, "save report failed",
			"request_id", middleware.GetRequestID(ctx), "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, saved)
}

func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
	month, err := time.Parse("2006-01", chi.URLParam(r, "month"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid month, want YYYY-MM"))
		return
	}
	out, err := h.service.Month(r.Context(), month)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid id"))
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
