package attendance

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/httputil"
)

// Handler exposes meeting-attendance endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Post("/", h.handleSave)
		r.Get("/", h.handleRange)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var a Attendance
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	saved, err := h.service.Save(r.Context(), &a)
	if err != nil {
		h.logger.WarnContext(r.Context(), "save attendance failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, saved)
}

func (h *Handler) handleRange(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid from date, want YYYY-MM-DD"))
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid to date, want YYYY-MM-DD"))
		return
	}
	out, err := h.service.Range(r.Context(), from, to)
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
