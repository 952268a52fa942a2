package blogservice

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 6
)

type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

type PageParams struct {
	Page  int
	Limit int
}

// ParsePageParams parses the page and limit query values. Anything that is
// not a positive integer falls back to the default.
func ParsePageParams(page, limit string) PageParams {
	return PageParams{
		Page:  parsePositive(page, DefaultPage),
		Limit: parsePositive(limit, DefaultLimit),
	}
}

func parsePositive(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}

	return n
}

// Offset is clamped to math.MaxInt when (page-1)*limit does not fit in an int.
func (p PageParams) Offset() int {
	if p.Limit > 0 && p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}

	return (p.Page - 1) * p.Limit
}

func (p PageParams) pagination(total int) Pagination {
	return Pagination{
		CurrentPage:  p.Page,
		TotalPages:   totalPages(total, p.Limit),
		TotalItems:   total,
		ItemsPerPage: p.Limit,
	}
}

func totalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}

	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	return pages
}
