package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Identity is the set of account fields carried in an access token.
type Identity struct {
	UserID  uuid.UUID
	Email   string
	Name    string
	IsGuest bool
}

// JWTService issues and verifies stateless bearer tokens. Both operations
// are pure: no I/O, no revocation list.
type JWTService interface {
	// GenerateToken signs a token for identity whose lifetime is the
	// configured token lifetime, counted from now.
	GenerateToken(ctx context.Context, identity Identity) (string, error)

	// ValidateToken verifies the signature and expiry of tokenString and
	// returns its claims. Returns ErrExpiredToken once now >= exp and
	// ErrInvalidToken for every other failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the verified contents of an access token.
type Claims struct {
	UserID    uuid.UUID `json:"sub"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsGuest   bool      `json:"isGuest"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti"`
}
