package shared

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// Pagination is the list metadata returned by every paginated endpoint.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes pagination metadata. Page and pageSize are
// floored at 1; totalPages is ceil(total/pageSize).
func NewPagination(page, pageSize, total int) Pagination {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	return Pagination{Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParseListParams reads page/pageSize query parameters. Absent values
// take the defaults; present but non-numeric values are an error, never
// silently coerced.
func ParseListParams(query url.Values) (page, pageSize int, err error) {
	page = defaultPage
	pageSize = defaultPageSize
	if raw := query.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("page must be a number, got %q", raw)
		}
	}
	if raw := query.Get("pageSize"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("pageSize must be a number, got %q", raw)
		}
	}
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return page, pageSize, nil
}
