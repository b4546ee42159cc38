package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/gtask-api/internal/domain"
	"github.com/phrazzld/gtask-api/internal/platform/logger"
	"github.com/phrazzld/gtask-api/internal/store"
)

// UserService provides operations on the caller's own account
type UserService interface {
	// GetProfile retrieves an active account by its ID
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateName changes the account's display name and returns the updated account
	UpdateName(ctx context.Context, userID uuid.UUID, name string) (*domain.User, error)

	// Deactivate soft-deletes the account. Tokens already issued stay valid
	// until they expire, but every lookup treats the account as missing.
	Deactivate(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	db        *sql.DB
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, db *sql.DB, logger *slog.Logger) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		db:        db,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// GetProfile retrieves an active account by its ID
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, s.wrap(ctx, "retrieve", userID, err)
	}
	return user, nil
}

// UpdateName changes the display name. The read and the write share one
// transaction so a concurrent deactivation cannot be overwritten.
func (s *UserServiceImpl) UpdateName(ctx context.Context, userID uuid.UUID, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if err := domain.ValidateUserName(name); err != nil {
		return nil, err
	}

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		user.Name = name
		if err := txStore.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, s.wrap(ctx, "update", userID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user name updated",
		slog.String("user_id", userID.String()))
	return updated, nil
}

// Deactivate soft-deletes the account
func (s *UserServiceImpl) Deactivate(ctx context.Context, userID uuid.UUID) error {
	if err := s.userStore.Deactivate(ctx, userID); err != nil {
		return s.wrap(ctx, "deactivate", userID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user deactivated",
		slog.String("user_id", userID.String()))
	return nil
}

func (s *UserServiceImpl) wrap(ctx context.Context, op string, userID uuid.UUID, err error) error {
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if errors.Is(err, domain.ErrValidation) {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Error("user operation failed",
		slog.String("operation", op),
		slog.String("user_id", userID.String()),
		slog.String("error", err.Error()))
	return fmt.Errorf("failed to %s user: %w", op, err)
}
