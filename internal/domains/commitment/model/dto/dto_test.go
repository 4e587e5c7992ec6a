package dto_test

import (
	"slotlink/internal/domains/commitment/model"
	"slotlink/internal/domains/commitment/model/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusyIntervalRequest_ToModel(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       dto.BusyIntervalRequest
		wantErr   bool
		wantStart time.Time
		status    string
	}{
		{
			name:      "offset normalized to utc",
			req:       dto.BusyIntervalRequest{SourceID: "evt-1", Start: "2025-06-10T10:00:00+02:00", End: "2025-06-10T11:00:00+02:00"},
			wantStart: time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
			status:    model.StatusConfirmed,
		},
		{
			name:      "explicit status kept",
			req:       dto.BusyIntervalRequest{SourceID: "evt-2", Start: "2025-06-10T10:00:00Z", End: "2025-06-10T10:30:00Z", Status: model.StatusTentative},
			wantStart: time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
			status:    model.StatusTentative,
		},
		{
			name:    "end before start",
			req:     dto.BusyIntervalRequest{SourceID: "evt-3", Start: "2025-06-10T10:00:00Z", End: "2025-06-10T09:00:00Z"},
			wantErr: true,
		},
		{
			name:    "unparseable start",
			req:     dto.BusyIntervalRequest{SourceID: "evt-4", Start: "tomorrow", End: "2025-06-10T09:00:00Z"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval, err := tt.req.ToModel("cal-1", "owner-1", now)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(interval.StartTime))
			assert.Equal(t, tt.status, interval.Status)
			assert.Equal(t, model.OriginSynced, interval.Origin)
			assert.Equal(t, "cal-1", interval.CalendarID)
			assert.NotEmpty(t, interval.ID)
		})
	}
}
