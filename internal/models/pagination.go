package models

// Pagination bounds shared by every list endpoint
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// NormalizePage clamps page and pageSize into the bounds used by both
// the list queries and their response metadata
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
