package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/gtask-api/internal/domain"
	"github.com/phrazzld/gtask-api/internal/mocks"
	"github.com/phrazzld/gtask-api/internal/service"
	"github.com/phrazzld/gtask-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("applies defaults and persists", func(t *testing.T) {
		var persisted *domain.Task
		tasks := &mocks.MockTaskStore{
			CreateFn: func(_ context.Context, task *domain.Task) error {
				persisted = task
				return nil
			},
		}
		svc := service.NewTaskService(tasks, discardLogger())

		task, err := svc.Create(ctx, ownerID, domain.TaskFields{Title: "  Write docs  "})
		require.NoError(t, err)
		require.Same(t, task, persisted)

		assert.Equal(t, ownerID, task.OwnerID)
		assert.Equal(t, "Write docs", task.Title)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Equal(t, domain.TaskPriorityLow, task.Priority)
		assert.True(t, task.Active)
	})

	t.Run("validation failure skips the store", func(t *testing.T) {
		called := false
		tasks := &mocks.MockTaskStore{
			CreateFn: func(context.Context, *domain.Task) error {
				called = true
				return nil
			},
		}
		svc := service.NewTaskService(tasks, discardLogger())

		_, err := svc.Create(ctx, ownerID, domain.TaskFields{Title: ""})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.False(t, called)
	})

	t.Run("store failure", func(t *testing.T) {
		tasks := &mocks.MockTaskStore{
			CreateFn: func(context.Context, *domain.Task) error { return errors.New("insert failed") },
		}
		svc := service.NewTaskService(tasks, discardLogger())

		_, err := svc.Create(ctx, ownerID, domain.TaskFields{Title: "ok"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create task")
	})
}

func TestTaskService_NotFoundIsUnified(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()
	title := "renamed"

	// The default mock answers every single-task lookup with ErrTaskNotFound,
	// which is what the store returns for missing and foreign tasks alike.
	svc := service.NewTaskService(&mocks.MockTaskStore{}, discardLogger())

	_, err := svc.Get(ctx, ownerID, taskID)
	assert.Same(t, service.ErrTaskNotFound, err)

	_, err = svc.Update(ctx, ownerID, taskID, domain.TaskPatch{Title: &title})
	assert.Same(t, service.ErrTaskNotFound, err)

	_, err = svc.Restore(ctx, ownerID, taskID)
	assert.Same(t, service.ErrTaskNotFound, err)

	assert.NoError(t, svc.Delete(ctx, ownerID, taskID))
}

func TestTaskService_PassesOwnerToStore(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	existing := mocks.NewTestTask(ownerID, "mine")

	var seenOwners []uuid.UUID
	tasks := &mocks.MockTaskStore{
		GetByIDFn: func(_ context.Context, id, owner uuid.UUID) (*domain.Task, error) {
			seenOwners = append(seenOwners, owner)
			if id == existing.ID && owner == ownerID {
				return existing, nil
			}
			return nil, store.ErrTaskNotFound
		},
		DeleteFn: func(_ context.Context, id, owner uuid.UUID) error {
			seenOwners = append(seenOwners, owner)
			return nil
		},
	}
	svc := service.NewTaskService(tasks, discardLogger())

	got, err := svc.Get(ctx, ownerID, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)

	_, err = svc.Get(ctx, uuid.New(), existing.ID)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)

	require.NoError(t, svc.Delete(ctx, ownerID, existing.ID))
	require.Len(t, seenOwners, 3)
	assert.Equal(t, ownerID, seenOwners[0])
	assert.Equal(t, ownerID, seenOwners[2])
}

func TestTaskService_Exists(t *testing.T) {
	ctx := context.Background()
	ownerID, taskID := uuid.New(), uuid.New()

	tasks := &mocks.MockTaskStore{
		ExistsFn: func(_ context.Context, id, owner uuid.UUID) (bool, error) {
			return id == taskID && owner == ownerID, nil
		},
	}
	svc := service.NewTaskService(tasks, discardLogger())

	exists, err := svc.Exists(ctx, ownerID, taskID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists(ctx, uuid.New(), taskID)
	require.NoError(t, err)
	assert.False(t, exists)

	failing := service.NewTaskService(&mocks.MockTaskStore{
		ExistsFn: func(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
			return false, errors.New("connection reset")
		},
	}, discardLogger())
	_, err = failing.Exists(ctx, ownerID, taskID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrTaskNotFound)
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()

	t.Run("empty patch is rejected before the store", func(t *testing.T) {
		tasks := &mocks.MockTaskStore{
			UpdateFn: func(context.Context, uuid.UUID, uuid.UUID, domain.TaskPatch) (*domain.Task, error) {
				t.Fatal("store must not be called")
				return nil, nil
			},
		}
		svc := service.NewTaskService(tasks, discardLogger())

		_, err := svc.Update(ctx, ownerID, taskID, domain.TaskPatch{})
		assert.ErrorIs(t, err, domain.ErrEmptyTaskPatch)
	})

	t.Run("returns the updated task", func(t *testing.T) {
		status := domain.TaskStatusCompleted
		tasks := &mocks.MockTaskStore{
			UpdateFn: func(_ context.Context, id, owner uuid.UUID, p domain.TaskPatch) (*domain.Task, error) {
				task := mocks.NewTestTask(owner, "t")
				task.ID = id
				task.Status = *p.Status
				return task, nil
			},
		}
		svc := service.NewTaskService(tasks, discardLogger())

		task, err := svc.Update(ctx, ownerID, taskID, domain.TaskPatch{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, taskID, task.ID)
		assert.Equal(t, domain.TaskStatusCompleted, task.Status)
	})

	t.Run("unexpected store failure is wrapped", func(t *testing.T) {
		tasks := &mocks.MockTaskStore{
			UpdateFn: func(context.Context, uuid.UUID, uuid.UUID, domain.TaskPatch) (*domain.Task, error) {
				return nil, errors.New("deadlock detected")
			},
		}
		svc := service.NewTaskService(tasks, discardLogger())

		title := "x"
		_, err := svc.Update(ctx, ownerID, taskID, domain.TaskPatch{Title: &title})
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrTaskNotFound)
		assert.Contains(t, err.Error(), "failed to update task")
	})
}

func TestTaskService_List(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("invalid query", func(t *testing.T) {
		svc := service.NewTaskService(&mocks.MockTaskStore{}, discardLogger())

		q := domain.NewTaskQuery()
		q.PageSize = 0
		_, err := svc.List(ctx, ownerID, q)
		assert.ErrorIs(t, err, domain.ErrInvalidPageSize)
	})

	t.Run("forwards query", func(t *testing.T) {
		var got domain.TaskQuery
		tasks := &mocks.MockTaskStore{
			QueryFn: func(_ context.Context, owner uuid.UUID, q domain.TaskQuery) (*domain.TaskPage, error) {
				got = q
				return &domain.TaskPage{
					Data:       []domain.Task{*mocks.NewTestTask(owner, "a")},
					Pagination: domain.NewPagination(q.Page, q.PageSize, 1),
				}, nil
			},
		}
		svc := service.NewTaskService(tasks, discardLogger())

		q := domain.NewTaskQuery()
		q.Filter.Statuses = []domain.TaskStatus{domain.TaskStatusCompleted}
		q.Filter.Search = "doc"
		page, err := svc.List(ctx, ownerID, q)
		require.NoError(t, err)

		assert.Equal(t, q, got)
		assert.Len(t, page.Data, 1)
		assert.Equal(t, 1, page.Pagination.TotalPages)
	})

	t.Run("deleted tasks", func(t *testing.T) {
		deleted := mocks.NewTestTask(ownerID, "gone")
		deleted.Active = false
		tasks := &mocks.MockTaskStore{
			ListDeletedFn: func(context.Context, uuid.UUID) ([]domain.Task, error) {
				return []domain.Task{*deleted}, nil
			},
		}
		svc := service.NewTaskService(tasks, discardLogger())

		list, err := svc.ListDeleted(ctx, ownerID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.False(t, list[0].Active)
	})
}
