package derive

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/httputil"
)

// Handler exposes the derived statistical forms as JSON.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/derive", func(r chi.Router) {
		r.Get("/s1/{month}", h.handleS1)
		r.Get("/s21/{publisherID}/{year}", h.handleCard)
		r.Get("/s88/{year}", h.handleAttendanceSummary)
		r.Get("/s3/{year}", h.handleS3)
		r.Get("/s10/{year}", h.handleS10)
	})
}

func (h *Handler) handleS1(w http.ResponseWriter, r *http.Request) {
	month, err := time.Parse("2006-01", chi.URLParam(r, "month"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid month, want YYYY-MM"))
		return
	}
	out, err := h.service.S1(r.Context(), month)
	if err != nil {
		h.logger.WarnContext(r.Context(), "derive s1 failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCard(w http.ResponseWriter, r *http.Request) {
	publisherID, err := strconv.ParseInt(chi.URLParam(r, "publisherID"), 10, 64)
	if err != nil || publisherID <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid publisher id"))
		return
	}
	year, err := pathYear(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.service.Card(r.Context(), publisherID, year)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	year, err := pathYear(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.service.AttendanceSummary(r.Context(), year)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleS3(w http.ResponseWriter, r *http.Request) {
	year, err := pathYear(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.service.S3(r.Context(), year)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleS10(w http.ResponseWriter, r *http.Request) {
	year, err := pathYear(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.service.S10(r.Context(), year)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func pathYear(r *http.Request) (int, error) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid year")
	}
	return year, nil
}
