package dto

import "strconv"

// Pagination is the envelope attached to every list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination builds the envelope; Pages is ceil(Total/Limit).
func NewPagination(page, limit int, total int64) Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// ParsePageParams clamps raw query values to sane bounds:
// page >= 1 (default 1), 1 <= limit <= 100 (default 20).
// Unparseable values fall back to the defaults.
func ParsePageParams(rawPage, rawLimit string) (int, int) {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
