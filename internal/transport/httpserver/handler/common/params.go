package common

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/saurabhsolanke/expensify-be/internal/config"
	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
	"github.com/saurabhsolanke/expensify-be/internal/domain/paging"
)

const dateLayout = "2006-01-02"

// ParsePaging reads page, limit, sort_by and sort_order. A limit above the
// configured maximum is clamped.
func ParsePaging(query url.Values, cfg config.PaginationConfig) (paging.Params, error) {
	page, err := parsePositiveInt(query, "page", 1)
	if err != nil {
		return paging.Params{}, err
	}
	limit, err := parsePositiveInt(query, "limit", cfg.DefaultLimit)
	if err != nil {
		return paging.Params{}, err
	}
	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}

	sortOrder := strings.ToLower(strings.TrimSpace(query.Get("sort_order")))
	if sortOrder != "" && sortOrder != paging.SortAsc && sortOrder != paging.SortDesc {
		return paging.Params{}, apperr.Validation("sort_order", sortOrder, "sort_order must be asc or desc")
	}

	return paging.Params{
		Page:      page,
		Limit:     limit,
		SortBy:    strings.TrimSpace(query.Get("sort_by")),
		SortOrder: sortOrder,
	}, nil
}

func parsePositiveInt(query url.Values, field string, fallback int) (int, error) {
	value := strings.TrimSpace(query.Get(field))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return 0, apperr.Validation(field, value, field+" must be a positive integer")
	}
	return parsed, nil
}

// ParseDateParam reads an optional YYYY-MM-DD query parameter.
func ParseDateParam(query url.Values, field string) (*time.Time, error) {
	return ParseDate(field, query.Get(field))
}

// ParseDate parses an optional YYYY-MM-DD value. Full RFC 3339 timestamps
// are accepted and truncated to their UTC day.
func ParseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		stamp, stampErr := time.Parse(time.RFC3339, value)
		if stampErr != nil {
			return nil, apperr.Validation(field, value, field+" must be a date in YYYY-MM-DD format")
		}
		stamp = stamp.UTC()
		parsed = time.Date(stamp.Year(), stamp.Month(), stamp.Day(), 0, 0, 0, 0, time.UTC)
	}
	return &parsed, nil
}

func ParseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return ParseDate(field, *value)
}

func ParseFloatParam(query url.Values, field string) (*float64, error) {
	value := strings.TrimSpace(query.Get(field))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, apperr.Validation(field, value, field+" must be a number")
	}
	return &parsed, nil
}

func ParseBoolParam(query url.Values, field string) (*bool, error) {
	value := strings.TrimSpace(query.Get(field))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, apperr.Validation(field, value, field+" must be true or false")
	}
	return &parsed, nil
}

// ParseDateRange reads the inclusive start_date / end_date pair.
func ParseDateRange(query url.Values) (*time.Time, *time.Time, error) {
	from, err := ParseDateParam(query, "start_date")
	if err != nil {
		return nil, nil, err
	}
	to, err := ParseDateParam(query, "end_date")
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func FormatDate(value time.Time) string {
	return value.Format(dateLayout)
}

func FormatOptionalDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := FormatDate(*value)
	return &formatted
}
