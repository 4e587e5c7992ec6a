package dto_test

import (
	"slotlink/internal/domains/booking/model"
	"slotlink/internal/domains/booking/model/dto"
	commitmentModel "slotlink/internal/domains/commitment/model"
	linkModel "slotlink/internal/domains/link/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestBookRequest_Normalize(t *testing.T) {
	req := dto.BookRequest{
		VisitorEmail: "  Ada@Example.COM ",
		ProfileRef:   strPtr("   "),
		Answers:      []dto.AnswerRequest{{Question: " Agenda? ", Answer: " Pricing  "}},
	}

	req.Normalize()

	assert.Equal(t, "ada@example.com", req.VisitorEmail)
	assert.Nil(t, req.ProfileRef)
	assert.Equal(t, dto.AnswerRequest{Question: "Agenda?", Answer: "Pricing"}, req.Answers[0])

	req.ProfileRef = strPtr(" https://linkedin.com/in/ada ")
	req.Normalize()

	require.NotNil(t, req.ProfileRef)
	assert.Equal(t, "https://linkedin.com/in/ada", *req.ProfileRef)
}

func TestBookRequest_ToModel(t *testing.T) {
	requested := 120
	req := dto.BookRequest{
		VisitorEmail:    "ada@example.com",
		DurationMinutes: &requested,
		Answers:         []dto.AnswerRequest{{Question: "Agenda?", Answer: "Pricing"}},
	}
	link := linkModel.Link{ID: "l-1", OwnerID: "owner-1", MeetingLength: 30}
	local := start.In(time.FixedZone("UTC+7", 7*60*60))

	booking := req.ToModel(link, local, start.Add(-time.Hour))

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "l-1", booking.LinkID)
	assert.Equal(t, "owner-1", booking.OwnerID)
	assert.Equal(t, 30, booking.DurationMinutes)
	assert.Equal(t, time.UTC, booking.ScheduledFor.Location())
	assert.True(t, booking.ScheduledFor.Equal(start))
	assert.Equal(t, start.Add(30*time.Minute), booking.EndsAt())
	assert.Equal(t, model.Answers{{Question: "Agenda?", Answer: "Pricing"}}, booking.Answers)
	assert.Equal(t, "ada@example.com", booking.CreatedBy)
}

func TestBookingDetailResponse_DeletedLink(t *testing.T) {
	var res dto.BookingDetailResponse

	res.FromModel(model.Detail{Booking: model.Booking{ID: "b-1", LinkID: "l-gone", ScheduledFor: start, DurationMinutes: 30}})

	assert.True(t, res.Link.Deleted)
	assert.Equal(t, "l-gone", res.Link.ID)
	assert.Empty(t, res.Link.Slug)
	assert.NotNil(t, res.Answers)
	assert.NotNil(t, res.Link.CustomQuestions)
	assert.Nil(t, res.Enrichment)
}

func TestBookingDetailResponse_WithEnrichment(t *testing.T) {
	at := start.Add(time.Minute)
	length := 30

	var res dto.BookingDetailResponse

	res.FromModel(model.Detail{
		Booking: model.Booking{
			ID:                "b-1",
			ScheduledFor:      start,
			DurationMinutes:   30,
			EnrichmentSummary: strPtr("Meeting Preparation Notes:"),
			EnrichmentAt:      &at,
		},
		LinkSlug:            strPtr("intro-call"),
		LinkMeetingLength:   &length,
		LinkCustomQuestions: []string{"Agenda?"},
	})

	assert.False(t, res.Link.Deleted)
	assert.Equal(t, "intro-call", res.Link.Slug)
	assert.Equal(t, 30, res.Link.MeetingLength)
	assert.Equal(t, []string{"Agenda?"}, res.Link.CustomQuestions)
	require.NotNil(t, res.Enrichment)
	assert.Equal(t, "Meeting Preparation Notes:", res.Enrichment.Summary)
	assert.True(t, res.HasEnrichment)
}

func TestPublicPageResponse_FromModels(t *testing.T) {
	expiry := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	maxUses := 2

	link := linkModel.Link{
		ID:               "l-1",
		Slug:             "intro-call",
		MeetingLength:    30,
		MaxDaysInAdvance: 14,
		MaxUses:          &maxUses,
		Uses:             5,
		ExpirationDate:   &expiry,
	}

	busy := []commitmentModel.BusyInterval{
		{StartTime: start, EndTime: start.Add(time.Hour), Status: commitmentModel.StatusTentative, Title: "Dentist"},
		{StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour), Status: commitmentModel.StatusCancelled},
	}

	var res dto.PublicPageResponse

	res.FromModels(link, busy)

	require.NotNil(t, res.Link.RemainingUses)
	assert.Zero(t, *res.Link.RemainingUses)
	require.NotNil(t, res.Link.ExpirationDate)
	assert.Equal(t, "2025-02-01", *res.Link.ExpirationDate)
	assert.Equal(t, []string{}, res.Link.CustomQuestions)
	assert.Equal(t, []dto.BusyRange{{Start: start, End: start.Add(time.Hour)}}, res.Busy)
}
