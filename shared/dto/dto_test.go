package dto_test

import (
	"net/http/httptest"
	"slotlink/shared/constant"
	"slotlink/shared/dto"
	"slotlink/shared/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	})

	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.ModifiedBy)
	assert.NotEmpty(t, metadata.CreatedAt)
	assert.NotEmpty(t, metadata.ModifiedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		rawQuery       string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all valid parameters",
			rawQuery: "page=2&limit=20&sort_by=slug&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "slug", SortDir: "ASC"},
		},
		{
			name:           "defaults when empty",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "invalid numbers fall back to defaults",
			rawQuery:       "page=-1&limit=abc",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "unknown sort direction ignored",
			rawQuery: "sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/links?"+tt.rawQuery, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Restrict(t *testing.T) {
	params := dto.QueryParams{SortBy: "1; DROP TABLE links", SortDir: ""}
	params.Restrict("slug", "created_at")

	assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)
	assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)

	params = dto.QueryParams{SortBy: "slug", SortDir: dto.SortDirAsc}
	params.Restrict("slug", "created_at")

	assert.Equal(t, "slug", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "owner_id", Value: "owner-1", Operator: dto.FilterOperatorEq, Table: "calendars"},
			dto.Filter{ArgName: "range_to", Field: "start_time", Value: to, Operator: dto.FilterOperatorLess, Table: "busy_intervals"},
			dto.Filter{ArgName: "range_from", Field: "end_time", Value: from, Operator: dto.FilterOperatorGreater, Table: "busy_intervals"},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(calendars.owner_id = :owner_id AND busy_intervals.start_time < :range_to AND busy_intervals.end_time > :range_from)", where)
	assert.Equal(t, "owner-1", args["owner_id"])
	assert.Equal(t, to, args["range_to"])
	assert.Equal(t, from, args["range_from"])
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "owner_id", Value: "owner-1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "max_uses", Operator: dto.FilterIsNull},
					dto.Filter{Field: "status", Value: []string{"confirmed", "tentative"}, Operator: dto.FilterOperatorIn},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(owner_id = :owner_id AND (max_uses IS NULL OR status IN (:status_0, :status_1) ))", where)
	assert.Equal(t, "confirmed", args["status_0"])
	assert.Equal(t, "tentative", args["status_1"])
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
