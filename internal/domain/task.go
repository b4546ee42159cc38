package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus represents the progress state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// TaskStatuses lists every valid status in display order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}
}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	return slices.Contains(TaskStatuses(), s)
}

// ParseTaskStatus converts a case-insensitive status name.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", NewValidationError("status",
			"must be one of: PENDING, IN_PROGRESS, COMPLETED", ErrInvalidTaskStatus)
	}
	return status, nil
}

// TaskPriority ranks a task from 1 (low) to 3 (high).
type TaskPriority int

// Task priorities
const (
	TaskPriorityLow    TaskPriority = 1
	TaskPriorityMedium TaskPriority = 2
	TaskPriorityHigh   TaskPriority = 3

	DefaultTaskPriority = TaskPriorityLow
)

// Valid reports whether p is within 1..3.
func (p TaskPriority) Valid() bool {
	return p >= TaskPriorityLow && p <= TaskPriorityHigh
}

// Task field limits
const (
	MaxTaskTitleLength       = 100
	MaxTaskDescriptionLength = 1000
)

// Common validation errors for Task
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwnerID    = errors.New("task owner ID cannot be empty")
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong    = errors.New("task title must be at most 100 characters")
	ErrTaskDescriptionLong = errors.New("task description must be at most 1000 characters")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrEmptyTaskPatch      = errors.New("task update contains no fields")
)

// Task is a unit of work owned by exactly one account. Active=false marks a
// soft-deleted task.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	OwnerID     uuid.UUID    `json:"owner_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	Active      bool         `json:"active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskFields are the caller-supplied values of a new task. Zero Status and
// Priority select the defaults.
type TaskFields struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
}

// NewTask creates an active task owned by ownerID.
func NewTask(ownerID uuid.UUID, fields TaskFields) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(fields.Title),
		Description: fields.Description,
		Status:      fields.Status,
		Priority:    fields.Priority,
		DueDate:     utcPtr(fields.DueDate),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == "" {
		task.Status = TaskStatusPending
	}
	if task.Priority == 0 {
		task.Priority = DefaultTaskPriority
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrEmptyTaskID)
	}
	if t.OwnerID == uuid.Nil {
		return NewValidationError("owner_id", "is required", ErrEmptyTaskOwnerID)
	}
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	if err := validateDescription(t.Description); err != nil {
		return err
	}
	if !t.Status.Valid() {
		return NewValidationError("status",
			"must be one of: PENDING, IN_PROGRESS, COMPLETED", ErrInvalidTaskStatus)
	}
	if !t.Priority.Valid() {
		return NewValidationError("priority", "must be between 1 and 3", ErrInvalidTaskPriority)
	}
	return nil
}

// TaskPatch is a partial task update. Nil fields are left unchanged;
// ClearDueDate removes the due date.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	Priority     *TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil && !p.ClearDueDate
}

// Validate checks every field the patch sets.
func (p TaskPatch) Validate() error {
	if p.IsEmpty() {
		return NewValidationError("", "at least one field must be provided", ErrEmptyTaskPatch)
	}
	if p.Title != nil {
		if err := validateTitle(strings.TrimSpace(*p.Title)); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return NewValidationError("status",
			"must be one of: PENDING, IN_PROGRESS, COMPLETED", ErrInvalidTaskStatus)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return NewValidationError("priority", "must be between 1 and 3", ErrInvalidTaskPriority)
	}
	if p.DueDate != nil && p.ClearDueDate {
		return NewValidationError("due_date", "cannot be both set and cleared", ErrValidation)
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return NewValidationError("title", "is required", ErrEmptyTaskTitle)
	}
	if utf8.RuneCountInString(title) > MaxTaskTitleLength {
		return NewValidationError("title", "must be at most 100 characters", ErrTaskTitleTooLong)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxTaskDescriptionLength {
		return NewValidationError("description",
			"must be at most 1000 characters", ErrTaskDescriptionLong)
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
