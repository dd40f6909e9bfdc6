// Package auth holds the congregation secretary accounts and the JWT
// surface that gates the API. Two roles exist: secretary (every record
// operation) and admin (destructive maintenance on top).
package auth

import (
	"strings"
	"time"

	"secretario/internal/platform/middleware"
	dErrors "secretario/pkg/domain-errors"
)

// User is an account allowed to operate the system.
type User struct {
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Role         middleware.Role `json:"role"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "username is required")
	}
	if u.Role != middleware.RoleSecretary && u.Role != middleware.RoleAdmin {
		return dErrors.New(dErrors.CodeBadRequest, "unknown role")
	}
	return nil
}
