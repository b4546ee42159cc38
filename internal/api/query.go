package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/phrazzld/gtask-api/internal/domain"
	"go.einride.tech/aip/ordering"
)

// List query parameter names
const (
	paramPage      = "page"
	paramPageSize  = "pageSize"
	paramSearch    = "search"
	paramStatus    = "status"
	paramSortField = "sortField"
	paramSortOrder = "sortOrder"
	paramOrderBy   = "order_by"
)

// parseTaskQuery builds a task listing query from URL parameters. Absent
// parameters keep the defaults of domain.NewTaskQuery; order_by wins over
// sortField/sortOrder. The result still needs Validate for bounds.
func parseTaskQuery(values url.Values) (domain.TaskQuery, error) {
	q := domain.NewTaskQuery()

	var err error
	if q.Page, err = intParam(values, paramPage, q.Page); err != nil {
		return q, err
	}
	if q.PageSize, err = intParam(values, paramPageSize, q.PageSize); err != nil {
		return q, err
	}

	q.Filter.Search = strings.TrimSpace(values.Get(paramSearch))

	for _, raw := range values[paramStatus] {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			status, err := domain.ParseTaskStatus(part)
			if err != nil {
				return q, err
			}
			q.Filter.Statuses = append(q.Filter.Statuses, status)
		}
	}

	if orderBy := strings.TrimSpace(values.Get(paramOrderBy)); orderBy != "" {
		sort, err := parseOrderBy(orderBy)
		if err != nil {
			return q, err
		}
		q.Sort = sort
		return q, nil
	}

	field := strings.TrimSpace(values.Get(paramSortField))
	order := values.Get(paramSortOrder)
	if field == "" && order == "" {
		return q, nil
	}
	if field == "" {
		field = string(domain.SortByCreatedAt)
	}
	desc, err := domain.ParseSortOrder(order)
	if err != nil {
		return q, err
	}
	q.Sort = []domain.TaskSort{{Field: domain.TaskSortField(field), Desc: desc}}
	return q, nil
}

// parseOrderBy reads an AIP-132 order_by list such as
// "priority desc, created_at".
func parseOrderBy(s string) ([]domain.TaskSort, error) {
	var ob ordering.OrderBy
	if err := ob.UnmarshalString(s); err != nil {
		return nil, domain.NewValidationError(paramOrderBy, "has invalid syntax", domain.ErrValidation)
	}
	if err := ob.ValidateForPaths(domain.TaskSortFields()...); err != nil {
		return nil, domain.NewValidationError(paramOrderBy,
			"must only use: "+strings.Join(domain.TaskSortFields(), ", "), domain.ErrInvalidSortField)
	}

	sort := make([]domain.TaskSort, 0, len(ob.Fields))
	for _, f := range ob.Fields {
		sort = append(sort, domain.TaskSort{Field: domain.TaskSortField(f.Path), Desc: f.Desc})
	}
	return sort, nil
}

func intParam(values url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def, domain.NewValidationError(name, "must be an integer", domain.ErrValidation)
	}
	return n, nil
}
