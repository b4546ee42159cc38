package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/gtask-api/internal/domain"
)

// TaskStore defines the interface for task persistence. Every operation
// takes the owner's ID and is scoped to that owner's rows; reads and writes
// other than Restore and ListDeleted only see active tasks.
type TaskStore interface {
	// Create saves a new task. The task's OwnerID must reference an account.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves an active task owned by ownerID.
	// Returns ErrTaskNotFound for missing, foreign and soft-deleted tasks alike.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// Exists reports whether an active task with id is owned by ownerID.
	Exists(ctx context.Context, id, ownerID uuid.UUID) (bool, error)

	// Update applies patch to an active task owned by ownerID and returns
	// the updated row. Returns ErrTaskNotFound when nothing matched.
	Update(ctx context.Context, id, ownerID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete soft-deletes an active task owned by ownerID. It is idempotent
	// and reports no error when nothing matched.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// Restore reactivates a soft-deleted task owned by ownerID and returns
	// it. Returns ErrTaskNotFound when no inactive owned task matched.
	Restore(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// Query returns one page of ownerID's active tasks that satisfy the
	// query's filter, in the query's order.
	Query(ctx context.Context, ownerID uuid.UUID, query domain.TaskQuery) (*domain.TaskPage, error)

	// ListDeleted returns ownerID's soft-deleted tasks, most recently
	// updated first.
	ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]domain.Task, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
