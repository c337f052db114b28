package common

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saurabhsolanke/expensify-be/internal/config"
	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
	"github.com/saurabhsolanke/expensify-be/internal/domain/paging"
)

var testPagination = config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100}

func pagingParams(page, limit int) paging.Params {
	return paging.Params{Page: page, Limit: limit}
}

func TestParsePagingDefaults(t *testing.T) {
	params, err := ParsePaging(url.Values{}, testPagination)
	require.NoError(t, err)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Empty(t, params.SortBy)
}

func TestParsePagingClampsLimit(t *testing.T) {
	params, err := ParsePaging(url.Values{"limit": {"500"}, "page": {"2"}, "sort_by": {"amount"}, "sort_order": {"ASC"}}, testPagination)
	require.NoError(t, err)
	assert.Equal(t, 100, params.Limit)
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, "amount", params.SortBy)
	assert.Equal(t, paging.SortAsc, params.SortOrder)
}

func TestParsePagingRejectsBadValues(t *testing.T) {
	for _, values := range []url.Values{
		{"page": {"0"}},
		{"limit": {"ten"}},
		{"sort_order": {"sideways"}},
	} {
		_, err := ParsePaging(values, testPagination)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "values %v", values)
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("date", "2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), *parsed)

	parsed, err = ParseDate("date", "2026-03-14T23:30:00-02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *parsed)

	parsed, err = ParseDate("date", "  ")
	require.NoError(t, err)
	assert.Nil(t, parsed)

	_, err = ParseDate("date", "14/03/2026")
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "date", appErr.Field)
}

func TestParseQueryScalars(t *testing.T) {
	query := url.Values{"min_amount": {"12.5"}, "is_active": {"false"}, "max_amount": {"lots"}}

	minAmount, err := ParseFloatParam(query, "min_amount")
	require.NoError(t, err)
	assert.Equal(t, 12.5, *minAmount)

	_, err = ParseFloatParam(query, "max_amount")
	assert.Error(t, err)

	active, err := ParseBoolParam(query, "is_active")
	require.NoError(t, err)
	assert.False(t, *active)

	missing, err := ParseBoolParam(query, "other")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
