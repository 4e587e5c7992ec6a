package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"slotlink/config"
	"slotlink/infras/otel/mocks"
	linkMocks "slotlink/internal/domains/link/mocks"
	"slotlink/internal/domains/link/model"
	"slotlink/internal/domains/link/model/dto"
	"slotlink/internal/domains/link/service"
	cacheMocks "slotlink/shared/cache/mocks"
	"slotlink/shared/clock"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	"slotlink/shared/failure"
)

var now = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func ownerCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")

	return context.WithValue(ctx, constant.ContextKeyUserEmail, "owner@example.com")
}

type fixture struct {
	repo  *linkMocks.MockLink
	cache *cacheMocks.MockRedisCache
	svc   service.Link
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	mockRepo := linkMocks.NewMockLink(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Booking.DefaultMaxDaysInAdvance = 30

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixture{
		repo:  mockRepo,
		cache: mockCache,
		svc:   service.New(mockRepo, cfg, mockCache, clock.NewFixed(now), mocks.NewOtel()),
	}
}

func TestLinkService_Create(t *testing.T) {
	expiration := "2025-12-31"

	tests := []struct {
		name      string
		req       dto.CreateLinkRequest
		setupMock func(f fixture)
		check     func(t *testing.T, res dto.LinkResponse)
		wantErr   error
	}{
		{
			name: "lowercases slug and applies defaults",
			req:  dto.CreateLinkRequest{Slug: " Intro-Call ", MeetingLength: 30, MaxUses: intPtr(1), ExpirationDate: &expiration},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, link model.Link) error {
					assert.Equal(t, "intro-call", link.Slug)
					assert.Equal(t, "owner-1", link.OwnerID)
					assert.Equal(t, "owner@example.com", link.OwnerEmail)
					assert.Equal(t, 0, link.Uses)
					assert.Equal(t, 30, link.MaxDaysInAdvance)
					assert.Equal(t, now, link.CreatedAt)

					return nil
				})
			},
			check: func(t *testing.T, res dto.LinkResponse) {
				assert.Equal(t, "intro-call", res.Slug)
				require.NotNil(t, res.RemainingUses)
				assert.Equal(t, 1, *res.RemainingUses)
				require.NotNil(t, res.ExpirationDate)
				assert.Equal(t, expiration, *res.ExpirationDate)
				assert.Equal(t, []string{}, res.CustomQuestions)
			},
		},
		{
			name:      "invalid slug charset",
			req:       dto.CreateLinkRequest{Slug: "intro call!", MeetingLength: 30},
			setupMock: func(fixture) {},
			wantErr:   failure.ErrValidation,
		},
		{
			name: "duplicate slug for owner",
			req:  dto.CreateLinkRequest{Slug: "intro-call", MeetingLength: 30},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: failure.ErrConflict,
		},
		{
			name: "duplicate detected by unique index",
			req:  dto.CreateLinkRequest{Slug: "intro-call", MeetingLength: 30},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(failure.Conflict("link with slug \"intro-call\" already exists"))
			},
			wantErr: failure.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(ownerCtx(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestLinkService_Create_RepositoryError(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

	_, err := f.svc.Create(ownerCtx(), dto.CreateLinkRequest{Slug: "intro", MeetingLength: 15})

	assert.Error(t, err)
	assert.Equal(t, 500, failure.GetCode(err))
}

func TestLinkService_Get(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Link{ID: "l-1", OwnerID: "owner-1", Slug: "intro"}, nil)

	res, err := f.svc.Get(ownerCtx(), "l-1")
	require.NoError(t, err)
	assert.Equal(t, "intro", res.Slug)
	assert.Nil(t, res.RemainingUses)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Link{}, nil)

	_, err = f.svc.Get(ownerCtx(), "missing")
	assert.ErrorIs(t, err, failure.ErrNotFound)
}

func TestLinkService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Link, error) {
			assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)

			_, args := filter.GetWhereClause()
			assert.Equal(t, "owner-1", args["owner_id"])

			return []model.Link{{ID: "l-1"}, {ID: "l-2"}}, nil
		})

	res, err := f.svc.GetAll(ownerCtx(), gDto.QueryParams{Page: 1, Limit: 2, SortBy: "password"})
	require.NoError(t, err)

	assert.Len(t, res.Links, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestLinkService_Update(t *testing.T) {
	current := model.Link{ID: "l-1", OwnerID: "owner-1", Slug: "intro", Uses: 3}

	tests := []struct {
		name      string
		req       dto.UpdateLinkRequest
		setupMock func(f fixture)
		wantErr   error
	}{
		{
			name:      "empty request",
			req:       dto.UpdateLinkRequest{},
			setupMock: func(fixture) {},
			wantErr:   failure.ErrValidation,
		},
		{
			name: "not found",
			req:  dto.UpdateLinkRequest{MeetingLength: 45},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Link{}, nil)
			},
			wantErr: failure.ErrNotFound,
		},
		{
			name: "slug taken by another link",
			req:  dto.UpdateLinkRequest{Slug: "Demo"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: failure.ErrConflict,
		},
		{
			name: "max uses below current uses",
			req:  dto.UpdateLinkRequest{MaxUses: intPtr(2)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
			},
			wantErr: failure.ErrValidation,
		},
		{
			name: "same slug and new length",
			req:  dto.UpdateLinkRequest{Slug: "intro", MeetingLength: 45},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 45, fields[model.FieldMeetingLength])
						assert.NotContains(t, fields, model.FieldUses)
						assert.NotContains(t, fields, constant.FieldCreatedAt)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(ownerCtx(), tt.req, "l-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLinkService_Delete_Idempotent(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Link{ID: "l-1", Slug: "intro"}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.svc.Delete(ownerCtx(), "l-1"))

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Link{}, nil)

	assert.NoError(t, f.svc.Delete(ownerCtx(), "l-1"))
}

func TestLinkService_IncrementUsage(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Link{ID: "l-1", MaxUses: intPtr(1)}, nil)
	f.repo.EXPECT().TryIncrementUsage(gomock.Any(), "l-1").Return(1, nil)

	res, err := f.svc.IncrementUsage(ownerCtx(), "l-1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Uses)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Link{ID: "l-1", MaxUses: intPtr(1), Uses: 1}, nil)
	f.repo.EXPECT().TryIncrementUsage(gomock.Any(), "l-1").Return(0, failure.UsageExceeded("link has reached its maximum number of uses"))

	_, err = f.svc.IncrementUsage(ownerCtx(), "l-1")
	assert.ErrorIs(t, err, failure.ErrUsageExceeded)
}
