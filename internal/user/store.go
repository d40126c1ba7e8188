package user

import (
	"context"
	"errors"
	"time"
)

// ErrNoUser is returned by a Store when no record matches the query.
var ErrNoUser = errors.New("user: not found")

// ErrDuplicateEmail is returned by a Store when a create collides with an
// existing email.
var ErrDuplicateEmail = errors.New("user: email already registered")

// Store is the persistent user record collection. Implementations provide
// atomic per-document reads and writes; the service layer adds no locking.
type Store interface {
	// FindByEmail returns the user with the given (normalized) email,
	// including the password hash. Returns ErrNoUser if absent.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the user with the given id, with the password hash
	// projected out. Returns ErrNoUser if absent.
	FindByID(ctx context.Context, id string) (*User, error)

	// Create persists a new user record and fills in its ID.
	// Returns ErrDuplicateEmail if the email is already taken.
	Create(ctx context.Context, u *User) error

	// UpdateLastLogin sets the user's last-login timestamp.
	UpdateLastLogin(ctx context.Context, id string, when time.Time) error
}
