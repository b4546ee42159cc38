package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/gtask-api/internal/domain"
)

// UserStore defines the interface for account persistence. Every lookup is
// scoped to active accounts; e-mail comparisons are case-insensitive.
type UserStore interface {
	// Create saves a new user.
	// Returns ErrEmailExists if an active user already has the email. The
	// check is enforced by a unique index, not by a prior read.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves an active user by ID.
	// Returns ErrUserNotFound if no active user has the ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves an active user by email.
	// Returns ErrUserNotFound if no active user has the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update writes the user's name and bumps updated_at.
	// Returns ErrUserNotFound if the user is absent or inactive.
	Update(ctx context.Context, user *domain.User) error

	// Deactivate sets active=false. It is idempotent: deactivating an
	// inactive or unknown user is not an error.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// DeactivateGuestsCreatedBefore deactivates every active guest account
	// created before cutoff and returns how many were deactivated.
	DeactivateGuestsCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
