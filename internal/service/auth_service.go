package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/gtask-api/internal/domain"
	"github.com/phrazzld/gtask-api/internal/platform/logger"
	"github.com/phrazzld/gtask-api/internal/service/auth"
	"github.com/phrazzld/gtask-api/internal/store"
)

// Guest provisioning parameters
const (
	// DefaultGuestTTL is how long a guest account lives before the sweep
	// deactivates it.
	DefaultGuestTTL = 24 * time.Hour

	guestSuffixLength   = 9
	guestPasswordBytes  = 32
	guestCreateAttempts = 3
	base36Alphabet      = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// PublicUser is the account view returned to clients. Guest sessions only
// expose Name and IsGuest.
type PublicUser struct {
	ID      uuid.UUID
	Name    string
	Email   string
	IsGuest bool
}

// AuthResult is the outcome of a successful authentication.
type AuthResult struct {
	Token string
	User  PublicUser
}

// AuthService orchestrates sign-up, sign-in and guest sessions.
type AuthService interface {
	// SignUp creates an account and returns a token for it.
	// Every failure wraps ErrRegistrationFailed; a taken e-mail also wraps
	// store.ErrEmailExists. Validation failures wrap domain.ErrValidation.
	SignUp(ctx context.Context, name, email, password string) (*AuthResult, error)

	// SignIn authenticates an active, non-guest account.
	// Returns ErrInvalidCredentials without saying which part was wrong.
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)

	// CreateGuestSession provisions a throwaway account and returns a guest token.
	// Infrastructure failures wrap ErrGuestSessionFailed.
	CreateGuestSession(ctx context.Context) (*AuthResult, error)

	// CleanupExpiredGuests deactivates guest accounts older than the guest
	// TTL as of now and returns how many were deactivated.
	CleanupExpiredGuests(ctx context.Context, now time.Time) (int64, error)
}

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	users    store.UserStore
	hasher   auth.PasswordHasher
	tokens   auth.JWTService
	guestTTL time.Duration
	random   io.Reader
	logger   *slog.Logger

	// dummyHash is verified when an e-mail is unknown so that both SignIn
	// failures take comparable time.
	dummyOnce sync.Once
	dummyHash string
}

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthOption customizes an AuthServiceImpl.
type AuthOption func(*AuthServiceImpl)

// WithGuestTTL overrides DefaultGuestTTL.
func WithGuestTTL(ttl time.Duration) AuthOption {
	return func(s *AuthServiceImpl) {
		if ttl > 0 {
			s.guestTTL = ttl
		}
	}
}

// WithRandom replaces crypto/rand as the source of guest e-mails and passwords.
func WithRandom(r io.Reader) AuthOption {
	return func(s *AuthServiceImpl) { s.random = r }
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	logger *slog.Logger,
	opts ...AuthOption,
) *AuthServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	s := &AuthServiceImpl{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		guestTTL: DefaultGuestTTL,
		random:   rand.Reader,
		logger:   logger.With(slog.String("component", "auth_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUp implements AuthService.SignUp
func (s *AuthServiceImpl) SignUp(ctx context.Context, name, email, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	hash, err := s.hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		verr := domain.NewValidationError("password",
			fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes), err)
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, verr)
	}
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	user, err := domain.NewUser(name, email, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("sign-up rejected: email in use")
		} else {
			log.Error("failed to create user", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	token, err := s.issue(ctx, user, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return &AuthResult{Token: token, User: publicUser(user)}, nil
}

// SignIn implements AuthService.SignIn
func (s *AuthServiceImpl) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to look up user for sign-in", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to sign in: %w", err)
		}
		s.hasher.Verify(password, s.timingHash())
		return nil, ErrInvalidCredentials
	}

	// Guest passwords are never disclosed, so guests cannot sign in.
	if user.IsGuest() || !s.hasher.Verify(password, user.HashedPassword) {
		log.Debug("sign-in rejected", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	token, err := s.issue(ctx, user, false)
	if err != nil {
		return nil, err
	}

	log.Debug("user signed in", slog.String("user_id", user.ID.String()))
	return &AuthResult{Token: token, User: publicUser(user)}, nil
}

// CreateGuestSession implements AuthService.CreateGuestSession
func (s *AuthServiceImpl) CreateGuestSession(ctx context.Context) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	password, err := s.randomHex(guestPasswordBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGuestSessionFailed, err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGuestSessionFailed, err)
	}

	var user *domain.User
	for attempt := 1; ; attempt++ {
		suffix, err := s.randomBase36(guestSuffixLength)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGuestSessionFailed, err)
		}
		user, err = domain.NewGuestUser(suffix, hash)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGuestSessionFailed, err)
		}

		err = s.users.Create(ctx, user)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrEmailExists) || attempt == guestCreateAttempts {
			log.Error("failed to create guest user",
				slog.String("error", err.Error()),
				slog.Int("attempt", attempt))
			return nil, fmt.Errorf("%w: %w", ErrGuestSessionFailed, err)
		}
		log.Warn("guest email collision, retrying", slog.Int("attempt", attempt))
	}

	token, err := s.issue(ctx, user, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGuestSessionFailed, err)
	}

	log.Info("guest session created", slog.String("user_id", user.ID.String()))
	return &AuthResult{
		Token: token,
		User:  PublicUser{Name: user.Name, IsGuest: true},
	}, nil
}

// CleanupExpiredGuests implements AuthService.CleanupExpiredGuests
func (s *AuthServiceImpl) CleanupExpiredGuests(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cutoff := now.Add(-s.guestTTL)
	n, err := s.users.DeactivateGuestsCreatedBefore(ctx, cutoff)
	if err != nil {
		log.Error("guest cleanup failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to clean up expired guests: %w", err)
	}

	log.Info("expired guests deactivated",
		slog.Int64("count", n),
		slog.Time("cutoff", cutoff))
	return n, nil
}

func (s *AuthServiceImpl) issue(ctx context.Context, user *domain.User, isGuest bool) (string, error) {
	token, err := s.tokens.GenerateToken(ctx, auth.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsGuest: isGuest,
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to generate token",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

func (s *AuthServiceImpl) timingHash() string {
	s.dummyOnce.Do(func() {
		if h, err := s.hasher.Hash("timing-equalization-password"); err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func (s *AuthServiceImpl) randomBase36(n int) (string, error) {
	max := big.NewInt(int64(len(base36Alphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(s.random, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random suffix: %w", err)
		}
		buf[i] = base36Alphabet[idx.Int64()]
	}
	return string(buf), nil
}

func (s *AuthServiceImpl) randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.random, buf); err != nil {
		return "", fmt.Errorf("failed to generate random password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func publicUser(u *domain.User) PublicUser {
	return PublicUser{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsGuest: u.IsGuest(),
	}
}
