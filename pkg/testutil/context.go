package testutil

import (
	"context"
	"net/http"

	"secretario/internal/platform/middleware"
)

// AsUser stamps the request context with an authenticated identity, the way
// the auth middleware would after validating a token.
func AsUser(req *http.Request, userID string, role middleware.Role) *http.Request {
	ctx := req.Context()
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyRole, role)
	return req.WithContext(ctx)
}

// AsSecretary is the common case for record-keeping handler tests.
func AsSecretary(req *http.Request) *http.Request {
	return AsUser(req, "test-user", middleware.RoleSecretary)
}
