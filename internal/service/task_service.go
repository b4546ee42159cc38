package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/gtask-api/internal/domain"
	"github.com/phrazzld/gtask-api/internal/platform/logger"
	"github.com/phrazzld/gtask-api/internal/store"
)

// TaskService provides task operations on behalf of an authenticated owner.
// Every method takes the caller's account id; tasks of other owners behave
// exactly like tasks that do not exist.
type TaskService interface {
	// Create adds a new active task for ownerID.
	Create(ctx context.Context, ownerID uuid.UUID, fields domain.TaskFields) (*domain.Task, error)

	// Get returns an active task. Returns ErrTaskNotFound otherwise.
	Get(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// Exists reports whether ownerID has an active task with taskID.
	Exists(ctx context.Context, ownerID, taskID uuid.UUID) (bool, error)

	// Update applies a partial update. Returns ErrTaskNotFound when no
	// active owned task matched.
	Update(ctx context.Context, ownerID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete soft-deletes a task. Deleting a missing task is not an error.
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error

	// Restore reactivates a soft-deleted task. Returns ErrTaskNotFound when
	// no deleted owned task matched.
	Restore(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// List returns one page of the owner's active tasks.
	List(ctx context.Context, ownerID uuid.UUID, query domain.TaskQuery) (*domain.TaskPage, error)

	// ListDeleted returns the owner's soft-deleted tasks.
	ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]domain.Task, error)
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) *TaskServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

// Create implements TaskService.Create
func (s *TaskServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	fields domain.TaskFields,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(ownerID, fields)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", ownerID.String()))
	return task, nil
}

// Get implements TaskService.Get
func (s *TaskServiceImpl) Get(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID, ownerID)
	if err != nil {
		return nil, s.wrap(ctx, "get", taskID, err)
	}
	return task, nil
}

// Exists implements TaskService.Exists
func (s *TaskServiceImpl) Exists(ctx context.Context, ownerID, taskID uuid.UUID) (bool, error) {
	exists, err := s.tasks.Exists(ctx, taskID, ownerID)
	if err != nil {
		return false, s.wrap(ctx, "check", taskID, err)
	}
	return exists, nil
}

// Update implements TaskService.Update
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx, taskID, ownerID, patch)
	if err != nil {
		return nil, s.wrap(ctx, "update", taskID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated",
		slog.String("task_id", taskID.String()))
	return task, nil
}

// Delete implements TaskService.Delete
func (s *TaskServiceImpl) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if err := s.tasks.Delete(ctx, taskID, ownerID); err != nil {
		return s.wrap(ctx, "delete", taskID, err)
	}
	return nil
}

// Restore implements TaskService.Restore
func (s *TaskServiceImpl) Restore(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.Restore(ctx, taskID, ownerID)
	if err != nil {
		return nil, s.wrap(ctx, "restore", taskID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task restored",
		slog.String("task_id", taskID.String()))
	return task, nil
}

// List implements TaskService.List
func (s *TaskServiceImpl) List(
	ctx context.Context,
	ownerID uuid.UUID,
	query domain.TaskQuery,
) (*domain.TaskPage, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	page, err := s.tasks.Query(ctx, ownerID, query)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return page, nil
}

// ListDeleted implements TaskService.ListDeleted
func (s *TaskServiceImpl) ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]domain.Task, error) {
	tasks, err := s.tasks.ListDeleted(ctx, ownerID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list deleted tasks",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list deleted tasks: %w", err)
	}
	return tasks, nil
}

// wrap converts a store failure for taskID into the service taxonomy.
func (s *TaskServiceImpl) wrap(ctx context.Context, op string, taskID uuid.UUID, err error) error {
	if errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	if errors.Is(err, domain.ErrValidation) {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Error("task operation failed",
		slog.String("operation", op),
		slog.String("task_id", taskID.String()),
		slog.String("error", err.Error()))
	return fmt.Errorf("failed to %s task: %w", op, err)
}
