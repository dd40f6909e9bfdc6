package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"secretario/internal/platform/middleware"
	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/platform/sentinel"
)

// Service authenticates users and manages accounts.
type Service struct {
	store  Store
	jwt    *JWTService
	logger *slog.Logger
}

func NewService(store Store, jwt *JWTService, logger *slog.Logger) *Service {
	return &Service{store: store, jwt: jwt, logger: logger}
}

// Login verifies credentials and returns a signed access token. Wrong
// username and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return "", dErrors.Wrap(dErrors.CodeInternal, "load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed login attempt", "username", username)
		}
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}
	token, err := s.jwt.GenerateAccessToken(u)
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeInternal, "sign token", err)
	}
	return token, nil
}

// CreateUser registers an account with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, username, password string, role middleware.Role) (*User, error) {
	u := &User{Username: username, Role: role}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "hash password", err)
	}
	u.PasswordHash = string(hash)
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "username already taken")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "create user", err)
	}
	return u, nil
}

// SeedAdmin creates the bootstrap admin account when no users exist yet.
func (s *Service) SeedAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	n, err := s.store.Count(ctx)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "count users", err)
	}
	if n > 0 {
		return nil
	}
	_, err = s.CreateUser(ctx, username, password, middleware.RoleAdmin)
	return err
}
