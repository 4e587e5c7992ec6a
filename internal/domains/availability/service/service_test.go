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
	availabilityMocks "slotlink/internal/domains/availability/mocks"
	"slotlink/internal/domains/availability/model"
	"slotlink/internal/domains/availability/model/dto"
	"slotlink/internal/domains/availability/service"
	cacheMocks "slotlink/shared/cache/mocks"
	"slotlink/shared/clock"
	"slotlink/shared/constant"
	"slotlink/shared/failure"
)

func ownerCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")
}

func newService(t *testing.T) (*availabilityMocks.MockAvailability, service.Availability) {
	ctrl := gomock.NewController(t)

	mockRepo := availabilityMocks.NewMockAvailability(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, &config.Config{}, mockCache, clock.NewFixed(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)), mocks.NewOtel())

	return mockRepo, svc
}

func TestAvailabilityService_Add(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.AddWindowsRequest
		setupMock func(repo *availabilityMocks.MockAvailability)
		wantErr   error
		wantLen   int
	}{
		{
			name: "bulk add accepts overlapping windows",
			req: dto.AddWindowsRequest{Windows: []dto.WindowRequest{
				{Weekday: "Monday", StartTime: "09:00", EndTime: "12:00"},
				{Weekday: "monday", StartTime: "11:00", EndTime: "13:00"},
			}},
			setupMock: func(repo *availabilityMocks.MockAvailability) {
				repo.EXPECT().InsertBulk(gomock.Any(), gomock.Len(2)).DoAndReturn(func(_ context.Context, windows []model.Window) error {
					assert.Equal(t, "monday", windows[0].Weekday)
					assert.Equal(t, "owner-1", windows[1].OwnerID)

					return nil
				})
			},
			wantLen: 2,
		},
		{
			name: "start after end",
			req: dto.AddWindowsRequest{Windows: []dto.WindowRequest{
				{Weekday: "tuesday", StartTime: "09:00", EndTime: "10:00"},
				{Weekday: "tuesday", StartTime: "17:00", EndTime: "09:00"},
			}},
			setupMock: func(*availabilityMocks.MockAvailability) {},
			wantErr:   failure.ErrValidation,
		},
		{
			name: "empty window",
			req: dto.AddWindowsRequest{Windows: []dto.WindowRequest{
				{Weekday: "tuesday", StartTime: "09:00", EndTime: "09:00"},
			}},
			setupMock: func(*availabilityMocks.MockAvailability) {},
			wantErr:   failure.ErrValidation,
		},
		{
			name:      "no windows",
			req:       dto.AddWindowsRequest{},
			setupMock: func(*availabilityMocks.MockAvailability) {},
			wantErr:   failure.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := newService(t)
			tt.setupMock(repo)

			res, err := svc.Add(ownerCtx(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Len(t, res.Windows, tt.wantLen)
		})
	}
}

func TestAvailabilityService_List(t *testing.T) {
	repo, svc := newService(t)

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Window{
		{ID: "w-1", Weekday: "friday", StartTime: "09:00:00", EndTime: "10:30:00"},
	}, nil)

	res, err := svc.List(ownerCtx())
	require.NoError(t, err)

	require.Len(t, res.Windows, 1)
	assert.Equal(t, "09:00", res.Windows[0].StartTime)
	assert.Equal(t, "10:30", res.Windows[0].EndTime)

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

	_, err = svc.List(ownerCtx())
	assert.Error(t, err)
}

func TestAvailabilityService_Remove(t *testing.T) {
	repo, svc := newService(t)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	assert.ErrorIs(t, svc.Remove(ownerCtx(), "w-404"), failure.ErrNotFound)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	assert.NoError(t, svc.Remove(ownerCtx(), "w-1"))
}

func TestGroupByWeekday(t *testing.T) {
	grouped := dto.GroupByWeekday([]model.Window{
		{Weekday: "monday", StartTime: "09:00:00", EndTime: "12:00:00"},
		{Weekday: "monday", StartTime: "13:00", EndTime: "17:00"},
		{Weekday: "sunday", StartTime: "10:00", EndTime: "11:00"},
	})

	assert.Len(t, grouped, 7)
	assert.Equal(t, []dto.Interval{{StartTime: "09:00", EndTime: "12:00"}, {StartTime: "13:00", EndTime: "17:00"}}, grouped["monday"])
	assert.Empty(t, grouped["tuesday"])
	assert.Len(t, grouped["sunday"], 1)
}
