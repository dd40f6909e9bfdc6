package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. Handler timeouts live in the router's
// middleware chain; only slow-header and idle limits are enforced here.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
