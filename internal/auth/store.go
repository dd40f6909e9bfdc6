package auth

import "context"

// Store is the persistence boundary for user accounts.
type Store interface {
	Create(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	Count(ctx context.Context) (int, error)
}
