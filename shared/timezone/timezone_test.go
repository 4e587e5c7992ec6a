package timezone_test

import (
	"slotlink/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneInit(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.NotEmpty(t, timezone.Format(testTime, "2006-01-02 15:04:05 MST"))

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	assert.False(t, parsed.IsZero())
}

func TestParseInstant(t *testing.T) {
	loc := timezone.GetLocation()

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339 with offset is converted to utc",
			value: "2025-06-01T09:00:00+02:00",
			want:  time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 zulu",
			value: "2025-06-01T09:00:00Z",
			want:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "naive value uses application timezone",
			value: "2025-06-01T09:00:00",
			want:  time.Date(2025, 6, 1, 9, 0, 0, 0, loc).UTC(),
		},
		{
			name:  "naive value without seconds",
			value: "2025-06-01T09:30",
			want:  time.Date(2025, 6, 1, 9, 30, 0, 0, loc).UTC(),
		},
		{
			name:    "garbage",
			value:   "tomorrow morning",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseInstant(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestDateOf(t *testing.T) {
	loc := timezone.GetLocation()
	instant := time.Date(2025, 1, 2, 15, 4, 5, 0, loc)

	got := timezone.DateOf(instant)

	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 2, got.Day())
	assert.Zero(t, got.Hour())
}
