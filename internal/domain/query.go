package domain

import (
	"errors"
	"strings"
)

// TaskSortField names a column tasks can be ordered by.
type TaskSortField string

// Sortable task fields
const (
	SortByID        TaskSortField = "id"
	SortByTitle     TaskSortField = "title"
	SortByStatus    TaskSortField = "status"
	SortByPriority  TaskSortField = "priority"
	SortByDueDate   TaskSortField = "due_date"
	SortByCreatedAt TaskSortField = "created_at"
	SortByUpdatedAt TaskSortField = "updated_at"
)

// TaskSortFields lists the sortable field names.
func TaskSortFields() []string {
	return []string{
		string(SortByID),
		string(SortByTitle),
		string(SortByStatus),
		string(SortByPriority),
		string(SortByDueDate),
		string(SortByCreatedAt),
		string(SortByUpdatedAt),
	}
}

// Valid reports whether f is a sortable field.
func (f TaskSortField) Valid() bool {
	for _, name := range TaskSortFields() {
		if string(f) == name {
			return true
		}
	}
	return false
}

// TaskSort is one ordering term.
type TaskSort struct {
	Field TaskSortField
	Desc  bool
}

// Paging defaults and limits
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Query validation errors
var (
	ErrInvalidPage      = errors.New("page must be greater than 0")
	ErrInvalidPageSize  = errors.New("page size must be between 1 and 100")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidSortOrder = errors.New("sort order must be either \"asc\" or \"desc\"")
)

// DefaultTaskSort orders newest first.
func DefaultTaskSort() []TaskSort {
	return []TaskSort{{Field: SortByCreatedAt, Desc: true}}
}

// ParseSortOrder converts "asc"/"desc" (case-insensitive) to a descending flag.
// An empty string yields descending.
func ParseSortOrder(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return true, nil
	case "asc":
		return false, nil
	}
	return false, NewValidationError("sortOrder", ErrInvalidSortOrder.Error(), ErrInvalidSortOrder)
}

// TaskFilter narrows a task listing. An empty Statuses set matches every
// status; Search is a case-insensitive substring of the title.
type TaskFilter struct {
	Statuses []TaskStatus
	Search   string
}

// TaskQuery describes one page of a caller's active tasks.
type TaskQuery struct {
	Filter   TaskFilter
	Sort     []TaskSort
	Page     int
	PageSize int
}

// NewTaskQuery returns a query for the first page with default sort.
func NewTaskQuery() TaskQuery {
	return TaskQuery{
		Sort:     DefaultTaskSort(),
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// Validate checks paging bounds, sort fields and status values.
func (q TaskQuery) Validate() error {
	if q.Page < 1 {
		return NewValidationError("page", "must be greater than 0", ErrInvalidPage)
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return NewValidationError("pageSize", "must be between 1 and 100", ErrInvalidPageSize)
	}
	for _, s := range q.Sort {
		if !s.Field.Valid() {
			return NewValidationError("sortField",
				"must be one of: "+strings.Join(TaskSortFields(), ", "), ErrInvalidSortField)
		}
	}
	for _, status := range q.Filter.Statuses {
		if !status.Valid() {
			return NewValidationError("status",
				"must be one of: PENDING, IN_PROGRESS, COMPLETED", ErrInvalidTaskStatus)
		}
	}
	return nil
}

// Offset is the number of rows skipped before the requested page.
func (q TaskQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// Pagination describes where a page sits within the full result set.
type Pagination struct {
	Page            int  `json:"page"`
	PageSize        int  `json:"pageSize"`
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPagination derives page metadata from the total row count.
// A page past the end keeps accurate totals.
func NewPagination(page, pageSize, totalItems int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}
	return Pagination{
		Page:            page,
		PageSize:        pageSize,
		TotalItems:      totalItems,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// TaskPage is one page of tasks.
type TaskPage struct {
	Data       []Task     `json:"data"`
	Pagination Pagination `json:"pagination"`
}
