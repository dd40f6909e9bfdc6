package documents

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"secretario/internal/derive"
	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/httputil"
)

// Deriver supplies the derived forms the renderers consume.
type Deriver interface {
	Card(ctx context.Context, publisherID int64, year int) (derive.Card, error)
	Cards(ctx context.Context, year int) ([]derive.Card, error)
	AttendanceSummary(ctx context.Context, year int) (derive.AttendanceSummary, error)
	S3(ctx context.Context, year int) (derive.S3, error)
}

// Handler serves rendered documents for download.
type Handler struct {
	deriver Deriver
	service *Service
	logger  *slog.Logger
}

func NewHandler(deriver Deriver, service *Service, logger *slog.Logger) *Handler {
	return &Handler{deriver: deriver, service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Get("/s21/{publisherID}/{year}", h.handleCard)
		r.Get("/s21/bundle/{year}", h.handleBundle)
		r.Get("/s88/{year}", h.handleAttendanceWorkbook)
		r.Get("/s3/{year}", h.handleWeekendWorkbook)
	})
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
	card, err := h.deriver.Card(r.Context(), publisherID, year)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.service.Card(r.Context(), card)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	serveFile(w, fmt.Sprintf("S-21 %s %d.fdf", sanitizeFilename(card.Publisher.DisplayName()), year),
		"application/vnd.fdf", out)
}

func (h *Handler) handleBundle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	year, err := pathYear(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	cards, err := h.deriver.Cards(ctx, year)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	batch, err := h.service.CardsBundle(ctx, cards)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if len(batch.Errors) > 0 {
		h.logger.WarnContext(ctx, "card bundle had failures",
			"year", year, "failed", len(batch.Errors))
		w.Header().Set("X-Render-Failures", strconv.Itoa(len(batch.Errors)))
	}
	serveFile(w, fmt.Sprintf("S-21 %d.zip", year), "application/zip", batch.Archive)
}

func (h *Handler) handleAttendanceWorkbook(w http.ResponseWriter, r *http.Request) {
	year, err := pathYear(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	summary, err := h.deriver.AttendanceSummary(r.Context(), year)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.service.AttendanceWorkbook(r.Context(), summary)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	serveFile(w, fmt.Sprintf("S-88 %d.xlsx", year),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}

func (h *Handler) handleWeekendWorkbook(w http.ResponseWriter, r *http.Request) {
	year, err := pathYear(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sheet, err := h.deriver.S3(r.Context(), year)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.service.WeekendWorkbook(r.Context(), sheet)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	serveFile(w, fmt.Sprintf("S-3 %d.xlsx", year),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}

func pathYear(r *http.Request) (int, error) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid year")
	}
	return year, nil
}

func serveFile(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
