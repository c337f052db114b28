package paging

import "strings"

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// OrderClause renders "column direction" for the first allowed column that
// matches SortBy, falling back to fallback. allowed maps API names to columns.
func (p Params) OrderClause(allowed map[string]string, fallback string) string {
	column, ok := allowed[strings.ToLower(strings.TrimSpace(p.SortBy))]
	if !ok {
		column = fallback
	}
	direction := "DESC"
	if strings.EqualFold(p.SortOrder, SortAsc) {
		direction = "ASC"
	}
	return column + " " + direction
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
