package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/gtask-api/internal/domain"
)

const taskColumns = `id, owner_id, title, description, status, priority, due_date, active, created_at, updated_at`

// sortColumns whitelists the ORDER BY expressions a TaskSortField may emit.
var sortColumns = map[domain.TaskSortField]string{
	domain.SortByID:        "id",
	domain.SortByTitle:     "title",
	domain.SortByStatus:    "status",
	domain.SortByPriority:  "priority",
	domain.SortByDueDate:   "due_date",
	domain.SortByCreatedAt: "created_at",
	domain.SortByUpdatedAt: "updated_at",
}

// sqlArgs accumulates positional parameters.
type sqlArgs []any

// add appends v and returns its placeholder.
func (a *sqlArgs) add(v any) string {
	*a = append(*a, v)
	return fmt.Sprintf("$%d", len(*a))
}

// taskListWhere builds the WHERE clause shared by the count and page queries
// of an owner's active task listing.
func taskListWhere(ownerID uuid.UUID, filter domain.TaskFilter, args *sqlArgs) string {
	conds := []string{
		"owner_id = " + args.add(ownerID),
		"active",
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		conds = append(conds, "status = ANY("+args.add(statuses)+")")
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		conds = append(conds, "title ILIKE "+args.add("%"+escapeLike(search)+"%")+` ESCAPE '\'`)
	}

	return strings.Join(conds, " AND ")
}

// taskOrderBy renders sorts as an ORDER BY list. Unknown fields are skipped,
// an empty list falls back to the default order, and id is appended as a
// tie-breaker so that pages never overlap.
func taskOrderBy(sorts []domain.TaskSort) string {
	if len(sorts) == 0 {
		sorts = domain.DefaultTaskSort()
	}

	terms := make([]string, 0, len(sorts)+1)
	seen := make(map[domain.TaskSortField]bool, len(sorts))
	for _, s := range sorts {
		col, ok := sortColumns[s.Field]
		if !ok || seen[s.Field] {
			continue
		}
		seen[s.Field] = true

		term := col + " ASC"
		if s.Desc {
			term = col + " DESC"
		}
		if s.Field == domain.SortByDueDate {
			term += " NULLS LAST"
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return taskOrderBy(domain.DefaultTaskSort())
	}
	if !seen[domain.SortByID] {
		terms = append(terms, "id ASC")
	}
	return strings.Join(terms, ", ")
}

// buildTaskListQueries returns the count statement and the page statement for q.
func buildTaskListQueries(ownerID uuid.UUID, q domain.TaskQuery) (countSQL string, countArgs []any, pageSQL string, pageArgs []any) {
	var args sqlArgs
	where := taskListWhere(ownerID, q.Filter, &args)

	countSQL = "SELECT COUNT(*) FROM tasks WHERE " + where
	countArgs = append([]any(nil), args...)

	limit := args.add(q.PageSize)
	offset := args.add(q.Offset())
	pageSQL = "SELECT " + taskColumns + " FROM tasks WHERE " + where +
		" ORDER BY " + taskOrderBy(q.Sort) +
		" LIMIT " + limit + " OFFSET " + offset

	return countSQL, countArgs, pageSQL, args
}

// buildTaskUpdate renders an UPDATE for the fields patch sets, scoped to an
// owner's active task, returning the updated row.
func buildTaskUpdate(id, ownerID uuid.UUID, patch domain.TaskPatch, now time.Time) (string, []any) {
	var args sqlArgs
	var sets []string

	if patch.Title != nil {
		sets = append(sets, "title = "+args.add(strings.TrimSpace(*patch.Title)))
	}
	if patch.Description != nil {
		sets = append(sets, "description = "+args.add(*patch.Description))
	}
	if patch.Status != nil {
		sets = append(sets, "status = "+args.add(string(*patch.Status)))
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = "+args.add(int(*patch.Priority)))
	}
	switch {
	case patch.ClearDueDate:
		sets = append(sets, "due_date = NULL")
	case patch.DueDate != nil:
		sets = append(sets, "due_date = "+args.add(patch.DueDate.UTC()))
	}
	sets = append(sets, "updated_at = "+args.add(now.UTC()))

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") +
		" WHERE id = " + args.add(id) +
		" AND owner_id = " + args.add(ownerID) +
		" AND active RETURNING " + taskColumns
	return query, args
}

// escapeLike escapes LIKE metacharacters so search text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
