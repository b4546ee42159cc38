package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/gtask-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, identity auth.Identity) (string, error)
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Token is returned by GenerateToken when GenerateTokenFn is nil.
	Token string
	// Claims is returned by ValidateToken when ValidateTokenFn is nil; a nil
	// Claims makes every token invalid.
	Claims *auth.Claims
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, identity auth.Identity) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, identity)
	}
	if m.Token == "" {
		return "mock-token", nil
	}
	return m.Token, nil
}

// ValidateToken implements the JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	if m.Claims == nil {
		return nil, auth.ErrInvalidToken
	}
	return m.Claims, nil
}

// NewClaims returns claims for userID valid for one hour from now.
func NewClaims(userID uuid.UUID, isGuest bool) *auth.Claims {
	now := time.Now().UTC()
	return &auth.Claims{
		UserID:    userID,
		Email:     "user@example.com",
		Name:      "Test User",
		IsGuest:   isGuest,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
		ID:        uuid.NewString(),
	}
}

// MockPasswordHasher implements auth.PasswordHasher without bcrypt's cost.
// The default hash is "hashed:" + password.
type MockPasswordHasher struct {
	HashFn   func(password string) (string, error)
	VerifyFn func(password, hash string) bool
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Verify implements the PasswordHasher interface
func (m *MockPasswordHasher) Verify(password, hash string) bool {
	if m.VerifyFn != nil {
		return m.VerifyFn(password, hash)
	}
	return hash == "hashed:"+password
}
