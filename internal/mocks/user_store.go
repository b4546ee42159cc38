package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/gtask-api/internal/domain"
	"github.com/phrazzld/gtask-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	CreateFn                        func(ctx context.Context, user *domain.User) error
	GetByIDFn                       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn                    func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn                        func(ctx context.Context, user *domain.User) error
	DeactivateFn                    func(ctx context.Context, id uuid.UUID) error
	DeactivateGuestsCreatedBeforeFn func(ctx context.Context, cutoff time.Time) (int64, error)

	mu    sync.Mutex
	Users map[uuid.UUID]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{Users: make(map[uuid.UUID]*domain.User)}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Users {
		if u.Active && domain.NormalizeEmail(u.Email) == domain.NormalizeEmail(user.Email) {
			return store.ErrEmailExists
		}
	}
	stored := *user
	m.Users[user.ID] = &stored
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.Users[id]; ok && u.Active {
		found := *u
		return &found, nil
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Users {
		if u.Active && domain.NormalizeEmail(u.Email) == domain.NormalizeEmail(email) {
			found := *u
			return &found, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.Users[user.ID]
	if !ok || !u.Active {
		return store.ErrUserNotFound
	}
	u.Name = user.Name
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// Deactivate implements the UserStore interface
func (m *MockUserStore) Deactivate(ctx context.Context, id uuid.UUID) error {
	if m.DeactivateFn != nil {
		return m.DeactivateFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.Users[id]; ok {
		u.Active = false
	}
	return nil
}

// DeactivateGuestsCreatedBefore implements the UserStore interface
func (m *MockUserStore) DeactivateGuestsCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeactivateGuestsCreatedBeforeFn != nil {
		return m.DeactivateGuestsCreatedBeforeFn(ctx, cutoff)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, u := range m.Users {
		if u.Active && u.IsGuest() && u.CreatedAt.Before(cutoff) {
			u.Active = false
			n++
		}
	}
	return n, nil
}

// WithTx implements the UserStore interface. The mock ignores transactions.
func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore {
	return m
}

// Count returns the number of stored rows, active or not.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Users)
}
