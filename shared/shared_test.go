package shared_test

import (
	"context"
	"errors"
	"fmt"
	"slotlink/shared"
	"slotlink/shared/cache/mocks"
	"slotlink/shared/constant"
	"slotlink/shared/dto"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func boolPtr(b bool) *bool { return &b }

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "numeric false", input: "0", expected: boolPtr(false)},
		{name: "upper case", input: "TRUE", expected: boolPtr(true)},
		{name: "invalid string returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateLink struct {
		Slug          string `db:"slug"`
		MeetingLength int    `db:"meeting_length"`
		MaxUses       *int   `db:"max_uses"`
		Ignored       string `db:"-"`
		NoTag         string
	}

	maxUses := 0

	result := shared.TransformFields(updateLink{
		Slug:    "intro-call",
		MaxUses: &maxUses,
		Ignored: "x",
		NoTag:   "y",
	}, "owner-1")

	assert.Equal(t, "intro-call", result["slug"])
	assert.Equal(t, &maxUses, result["max_uses"])
	assert.NotContains(t, result, "meeting_length")
	assert.NotContains(t, result, "-")
	assert.Equal(t, "owner-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
}

func TestFilterByOwnerAndID(t *testing.T) {
	group := shared.FilterByOwnerAndID("owner-1", "w-1", "owner_id", "id", "availability_windows")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(availability_windows.owner_id = :owner_id AND availability_windows.id = :id)", where)
	assert.Equal(t, "owner-1", args["owner_id"])
	assert.Equal(t, "w-1", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:page:intro-call", shared.BuildCacheKey("booking:page", "intro-call"))
	assert.Equal(t, "limiter", shared.BuildCacheKey("limiter"))
}

func TestBuildCacheKeyWithQuery_Deterministic(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}
	filter := shared.FilterByOwnerAndID("owner-1", "l-1", "owner_id", "id", "links")

	first := shared.BuildCacheKeyWithQuery("link:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("link:gets", params, filter)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "link:gets:1:10:created_at:DESC")
	assert.Contains(t, first, "owner_id=owner-1")

	params.Page = 2
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("link:gets", params, filter))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := mocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "link:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "link:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "link:count*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "link:count")
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pq.Error{Code: "23505", Constraint: "bookings_owner_scheduled_for_key"}
	wrapped := fmt.Errorf("failed to insert data (booking): %w", unique)

	assert.True(t, shared.IsUniqueViolation(wrapped))
	assert.True(t, shared.IsUniqueViolation(wrapped, "bookings_owner_scheduled_for_key"))
	assert.False(t, shared.IsUniqueViolation(wrapped, "links_owner_slug_key"))
	assert.False(t, shared.IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, shared.IsUniqueViolation(errors.New("boom")))
}
