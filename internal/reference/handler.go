package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/httputil"
)

// Handler serves the lookup tables.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/reference", func(r chi.Router) {
		r.Get("/privileges", h.handlePrivileges)
		r.Get("/publisher-types", h.handlePublisherTypes)
	})
}

func (h *Handler) handlePrivileges(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListPrivileges(r.Context())
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "list privileges", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handlePublisherTypes(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListPublisherTypes(r.Context())
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "list publisher types", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
