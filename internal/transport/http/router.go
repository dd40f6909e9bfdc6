// Package httptransport composes the API surface: the shared middleware
// chain, the public login route, the authenticated record-keeping routes and
// the admin-only maintenance routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"secretario/internal/platform/metrics"
	"secretario/internal/platform/middleware"
	"secretario/pkg/httputil"
)

// Registrar is the shape every domain handler exposes.
type Registrar interface {
	Register(r chi.Router)
}

// AuthRegistrar is the auth handler's split surface: login is public, user
// management is admin-only.
type AuthRegistrar interface {
	RegisterPublic(r chi.Router)
	RegisterAdmin(r chi.Router)
}

// Deps collects everything the router mounts.
type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Validator middleware.JWTValidator

	Auth       AuthRegistrar
	Secretary  []Registrar // authenticated record-keeping handlers
	Admin      []Registrar // admin-only handlers
	HealthPing func() error
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Latency(deps.Metrics))

	r.Get("/healthz", handleHealth(deps.HealthPing))
	r.Handle("/metrics", promhttp.Handler())

	deps.Auth.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(deps.Validator, deps.Logger))

		for _, h := range deps.Secretary {
			h.Register(r)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(deps.Logger))
			deps.Auth.RegisterAdmin(r)
			for _, h := range deps.Admin {
				h.Register(r)
			}
		})
	})

	return r
}

func handleHealth(ping func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
