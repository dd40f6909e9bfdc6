package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"secretario/internal/platform/middleware"
	"secretario/pkg/testutil"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAdmin(t *testing.T) {
	var reachedUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reachedUserID = middleware.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireAdmin(discard())(next)

	t.Run("secretary is forbidden", func(t *testing.T) {
		req := testutil.AsUser(testutil.NewJSONRequest(t, http.MethodPost, "/maintenance/sweep", nil),
			"user-1", middleware.RoleSecretary)

		rr := testutil.Do(handler, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("admin passes through", func(t *testing.T) {
		req := testutil.AsUser(testutil.NewJSONRequest(t, http.MethodPost, "/maintenance/sweep", nil),
			"admin-1", middleware.RoleAdmin)

		rr := testutil.Do(handler, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "admin-1", reachedUserID)
	})

	t.Run("anonymous is forbidden", func(t *testing.T) {
		rr := testutil.Do(handler, testutil.NewJSONRequest(t, http.MethodPost, "/maintenance/sweep", nil))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestContextAccessorsDefaultEmpty(t *testing.T) {
	req := testutil.NewJSONRequest(t, http.MethodGet, "/", nil)

	assert.Empty(t, middleware.GetUserID(req.Context()))
	assert.Empty(t, middleware.GetRole(req.Context()))
	assert.Empty(t, middleware.GetRequestID(req.Context()))
}
