package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/gtask-api/internal/domain"
	"github.com/phrazzld/gtask-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. Unset functions
// return zero values, or store.ErrTaskNotFound for single-task reads.
type MockTaskStore struct {
	CreateFn      func(ctx context.Context, task *domain.Task) error
	GetByIDFn     func(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)
	ExistsFn      func(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
	UpdateFn      func(ctx context.Context, id, ownerID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	DeleteFn      func(ctx context.Context, id, ownerID uuid.UUID) error
	RestoreFn     func(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)
	QueryFn       func(ctx context.Context, ownerID uuid.UUID, q domain.TaskQuery) (*domain.TaskPage, error)
	ListDeletedFn func(ctx context.Context, ownerID uuid.UUID) ([]domain.Task, error)
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id, ownerID)
	}
	return nil, store.ErrTaskNotFound
}

// Exists implements the TaskStore interface
func (m *MockTaskStore) Exists(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id, ownerID)
	}
	return false, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(
	ctx context.Context,
	id, ownerID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, ownerID, patch)
	}
	return nil, store.ErrTaskNotFound
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, ownerID)
	}
	return nil
}

// Restore implements the TaskStore interface
func (m *MockTaskStore) Restore(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	if m.RestoreFn != nil {
		return m.RestoreFn(ctx, id, ownerID)
	}
	return nil, store.ErrTaskNotFound
}

// Query implements the TaskStore interface
func (m *MockTaskStore) Query(
	ctx context.Context,
	ownerID uuid.UUID,
	q domain.TaskQuery,
) (*domain.TaskPage, error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, ownerID, q)
	}
	return &domain.TaskPage{
		Data:       []domain.Task{},
		Pagination: domain.NewPagination(q.Page, q.PageSize, 0),
	}, nil
}

// ListDeleted implements the TaskStore interface
func (m *MockTaskStore) ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]domain.Task, error) {
	if m.ListDeletedFn != nil {
		return m.ListDeletedFn(ctx, ownerID)
	}
	return []domain.Task{}, nil
}

// WithTx implements the TaskStore interface. The mock ignores transactions.
func (m *MockTaskStore) WithTx(*sql.Tx) store.TaskStore {
	return m
}

// NewTestTask returns an active task owned by ownerID with fixed timestamps.
func NewTestTask(ownerID uuid.UUID, title string) *domain.Task {
	ts := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	return &domain.Task{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Status:    domain.TaskStatusPending,
		Priority:  domain.DefaultTaskPriority,
		Active:    true,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}
