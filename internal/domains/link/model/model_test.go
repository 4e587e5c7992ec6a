package model_test

import (
	"slotlink/internal/domains/link/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return &t
}

func TestLink_IsExpired(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		link     model.Link
		expected bool
	}{
		{name: "no expiration", link: model.Link{}, expected: false},
		{name: "expires today", link: model.Link{ExpirationDate: datePtr(2025, 6, 10)}, expected: false},
		{name: "expires tomorrow", link: model.Link{ExpirationDate: datePtr(2025, 6, 11)}, expected: false},
		{name: "expired yesterday", link: model.Link{ExpirationDate: datePtr(2025, 6, 9)}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.link.IsExpired(now))
		})
	}
}

func TestLink_HasUsesLeft(t *testing.T) {
	assert.True(t, model.Link{}.HasUsesLeft())
	assert.True(t, model.Link{MaxUses: intPtr(2), Uses: 1}.HasUsesLeft())
	assert.False(t, model.Link{MaxUses: intPtr(1), Uses: 1}.HasUsesLeft())
}

func TestLink_LatestStart(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	link := model.Link{MaxDaysInAdvance: 7, MeetingLength: 45}

	assert.Equal(t, now.AddDate(0, 0, 7), link.LatestStart(now))
	assert.Equal(t, 45*time.Minute, link.Duration())
}
