package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/gtask-api/internal/domain"
	"github.com/phrazzld/gtask-api/internal/service"
)

// SignUpRequest defines the payload for the sign-up endpoint.
type SignUpRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72,maxbytes=72"`
}

// SignInRequest defines the payload for the sign-in endpoint.
type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of an account. Guest sessions carry only
// name and isGuest.
type UserResponse struct {
	ID      *uuid.UUID `json:"id,omitempty"`
	Name    string     `json:"name"`
	Email   string     `json:"email,omitempty"`
	IsGuest bool       `json:"isGuest,omitempty"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ProfileResponse is the caller's own account.
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsGuest   bool      `json:"isGuest"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateProfileRequest changes the caller's display name.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,min=1,max=100"`
	Description string     `json:"description" validate:"max=1000"`
	Status      string     `json:"status"      validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority    *int       `json:"priority"    validate:"omitempty,min=1,max=3"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest defines a partial task update. Absent fields are left
// unchanged; "due_date": null clears the due date.
type UpdateTaskRequest struct {
	Title       *string      `json:"title"       validate:"omitempty,min=1,max=100"`
	Description *string      `json:"description" validate:"omitempty,max=1000"`
	Status      *string      `json:"status"      validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority    *int         `json:"priority"    validate:"omitempty,min=1,max=3"`
	DueDate     OptionalTime `json:"due_date"`
}

// OptionalTime distinguishes an absent JSON field from an explicit null.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskListResponse is one page of tasks.
type TaskListResponse struct {
	Data       []TaskResponse    `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

func authResponse(result *service.AuthResult) AuthResponse {
	user := UserResponse{Name: result.User.Name, IsGuest: result.User.IsGuest}
	if !result.User.IsGuest {
		id := result.User.ID
		user.ID = &id
		user.Email = result.User.Email
	}
	return AuthResponse{Token: result.Token, User: user}
}

func profileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsGuest:   u.IsGuest(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func taskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    int(t.Priority),
		DueDate:     t.DueDate,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func taskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskResponse(&tasks[i]))
	}
	return out
}

// fields converts a validated create request to domain fields.
func (req CreateTaskRequest) fields() domain.TaskFields {
	f := domain.TaskFields{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		DueDate:     req.DueDate,
	}
	if req.Priority != nil {
		f.Priority = domain.TaskPriority(*req.Priority)
	}
	return f
}

// patch converts a validated update request to a domain patch.
func (req UpdateTaskRequest) patch() domain.TaskPatch {
	p := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		p.Status = &s
	}
	if req.Priority != nil {
		pr := domain.TaskPriority(*req.Priority)
		p.Priority = &pr
	}
	if req.DueDate.Set {
		if req.DueDate.Value == nil {
			p.ClearDueDate = true
		} else {
			p.DueDate = req.DueDate.Value
		}
	}
	return p
}
