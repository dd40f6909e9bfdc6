package importer

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"secretario/internal/platform/middleware"
	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/httputil"
)

const maxUploadBytes = 16 << 20

// Handler accepts spreadsheet uploads and runs the reconciler over them.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/import", func(r chi.Router) {
		r.Post("/publishers", h.handleImportPublishers)
		r.Post("/reports", h.handleImportReports)
	})
}

func (h *Handler) handleImportPublishers(w http.ResponseWriter, r *http.Request) {
	h.handleImport(w, r, h.service.ReconcilePublishers)
}

func (h *Handler) handleImportReports(w http.ResponseWriter, r *http.Request) {
	h.handleImport(w, r, h.service.ReconcileReports)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request, reconcile func(context.Context, []Row, Progress) (Summary, error)) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "expected multipart upload"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing file field"))
		return
	}
	defer file.Close()

	rows, err := ReadSheet(file, r.FormValue("sheet"))
	if err != nil {
		h.logger.WarnContext(ctx, "spreadsheet decode failed",
			"request_id", requestID, "filename", header.Filename, "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "could not read spreadsheet"))
		return
	}

	progress := func(percent int, message string) {
		h.logger.DebugContext(ctx, "import progress",
			"request_id", requestID, "percent", percent, "message", message)
	}
	summary, err := reconcile(ctx, rows, progress)
	if err != nil {
		h.logger.ErrorContext(ctx, "import failed",
			"request_id", requestID, "filename", header.Filename, "error", err)
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "import failed", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}
