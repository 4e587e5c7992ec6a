package dto

import (
	availabilityDto "slotlink/internal/domains/availability/model/dto"
	"slotlink/internal/domains/booking/model"
	commitmentModel "slotlink/internal/domains/commitment/model"
	linkModel "slotlink/internal/domains/link/model"
	"slotlink/shared"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	gModel "slotlink/shared/model"
	"slotlink/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type AnswerRequest struct {
	Question string `json:"question" validate:"required,max=500"`
	Answer   string `json:"answer"   validate:"max=5000"`
}

// BookRequest is submitted by a visitor. DurationMinutes is accepted for compatibility and ignored:
// the meeting length always comes from the link.
type BookRequest struct {
	LinkRef         string          `json:"-"`
	Start           string          `json:"start"            validate:"required"`
	VisitorEmail    string          `json:"visitor_email"    validate:"required,email,max=254"`
	ProfileRef      *string         `json:"profile_ref"      validate:"omitempty,max=2048"`
	DurationMinutes *int            `json:"duration_minutes" validate:"omitempty"`
	Answers         []AnswerRequest `json:"answers"          validate:"omitempty,max=50,dive"`
}

// Normalize trims free text and drops an empty profile ref.
func (b *BookRequest) Normalize() {
	b.VisitorEmail = strings.ToLower(strings.TrimSpace(b.VisitorEmail))

	if b.ProfileRef != nil {
		ref := strings.TrimSpace(*b.ProfileRef)
		if ref == constant.Empty {
			b.ProfileRef = nil
		} else {
			b.ProfileRef = &ref
		}
	}

	for i := range b.Answers {
		b.Answers[i].Question = strings.TrimSpace(b.Answers[i].Question)
		b.Answers[i].Answer = strings.TrimSpace(b.Answers[i].Answer)
	}
}

func (b *BookRequest) ToModel(link linkModel.Link, start, now time.Time) model.Booking {
	answers := lo.Map(b.Answers, func(answer AnswerRequest, _ int) model.Answer {
		return model.Answer{Question: answer.Question, Answer: answer.Answer}
	})

	return model.Booking{
		ID:              uuid.NewString(),
		LinkID:          link.ID,
		OwnerID:         link.OwnerID,
		VisitorEmail:    b.VisitorEmail,
		ProfileRef:      b.ProfileRef,
		ScheduledFor:    start.UTC(),
		DurationMinutes: link.MeetingLength,
		Answers:         answers,
		Metadata:        gModel.NewMetadata(b.VisitorEmail, now.UTC()),
	}
}

type BookResponse struct {
	BookingID string `json:"booking_id"`
	Success   bool   `json:"success"`
}

type BookingResponse struct {
	ID              string    `json:"id"`
	LinkID          string    `json:"link_id"`
	VisitorEmail    string    `json:"visitor_email"`
	ProfileRef      *string   `json:"profile_ref"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	HasEnrichment   bool      `json:"has_enrichment"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.LinkID = mod.LinkID
	r.VisitorEmail = mod.VisitorEmail
	r.ProfileRef = mod.ProfileRef
	r.StartTime = mod.ScheduledFor.UTC()
	r.EndTime = mod.EndsAt().UTC()
	r.DurationMinutes = mod.DurationMinutes
	r.HasEnrichment = mod.HasEnrichment()
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type LinkSummary struct {
	ID              string   `json:"id"`
	Slug            string   `json:"slug,omitempty"`
	MeetingLength   int      `json:"meeting_length,omitempty"`
	CustomQuestions []string `json:"custom_questions"`
	Deleted         bool     `json:"deleted"`
}

type Enrichment struct {
	Summary string    `json:"summary"`
	At      time.Time `json:"at"`
}

type BookingDetailResponse struct {
	BookingResponse
	Answers    []model.Answer `json:"answers"`
	Link       LinkSummary    `json:"link"`
	Enrichment *Enrichment    `json:"enrichment"`
}

func (r *BookingDetailResponse) FromModel(mod model.Detail) {
	r.BookingResponse.FromModel(mod.Booking)

	r.Answers = mod.Answers
	if r.Answers == nil {
		r.Answers = []model.Answer{}
	}

	r.Link = LinkSummary{ID: mod.LinkID, CustomQuestions: []string(mod.LinkCustomQuestions), Deleted: mod.LinkSlug == nil}
	if mod.LinkSlug != nil {
		r.Link.Slug = *mod.LinkSlug
	}

	if mod.LinkMeetingLength != nil {
		r.Link.MeetingLength = *mod.LinkMeetingLength
	}

	if r.Link.CustomQuestions == nil {
		r.Link.CustomQuestions = []string{}
	}

	if mod.HasEnrichment() && mod.EnrichmentAt != nil {
		r.Enrichment = &Enrichment{Summary: *mod.EnrichmentSummary, At: mod.EnrichmentAt.UTC()}
	}
}

type PublicLink struct {
	ID               string   `json:"id"`
	Slug             string   `json:"slug"`
	MeetingLength    int      `json:"meeting_length"`
	MaxDaysInAdvance int      `json:"max_days_in_advance"`
	ExpirationDate   *string  `json:"expiration_date"`
	RemainingUses    *int     `json:"remaining_uses"`
	CustomQuestions  []string `json:"custom_questions"`
}

// IsExpired reports whether a cached view has passed its expiration date since it was built.
func (l PublicLink) IsExpired(now time.Time) bool {
	if l.ExpirationDate == nil {
		return false
	}

	expiry, err := time.ParseInLocation(constant.DateOnlyFormat, *l.ExpirationDate, timezone.GetLocation())
	if err != nil {
		return false
	}

	return timezone.DateOf(now).After(expiry)
}

type BusyRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PublicPageResponse is everything the visitor's slot picker needs. Busy ranges carry no detail
// about what the owner is doing.
type PublicPageResponse struct {
	Link         PublicLink                            `json:"link"`
	Timezone     string                                `json:"timezone"`
	Availability map[string][]availabilityDto.Interval `json:"availability"`
	From         time.Time                             `json:"from"`
	To           time.Time                             `json:"to"`
	Busy         []BusyRange                           `json:"busy"`
}

func (r *PublicPageResponse) FromModels(link linkModel.Link, busy []commitmentModel.BusyInterval) {
	r.Link = PublicLink{
		ID:               link.ID,
		Slug:             link.Slug,
		MeetingLength:    link.MeetingLength,
		MaxDaysInAdvance: link.MaxDaysInAdvance,
		CustomQuestions:  []string(link.CustomQuestions),
	}

	if r.Link.CustomQuestions == nil {
		r.Link.CustomQuestions = []string{}
	}

	if link.ExpirationDate != nil {
		date := link.ExpirationDate.Format(constant.DateOnlyFormat)
		r.Link.ExpirationDate = &date
	}

	if link.MaxUses != nil {
		remaining := max(*link.MaxUses-link.Uses, 0)
		r.Link.RemainingUses = &remaining
	}

	busy = lo.Filter(busy, func(interval commitmentModel.BusyInterval, _ int) bool {
		return interval.Status != commitmentModel.StatusCancelled
	})

	r.Busy = lo.Map(busy, func(interval commitmentModel.BusyInterval, _ int) BusyRange {
		return BusyRange{Start: interval.StartTime.UTC(), End: interval.EndTime.UTC()}
	})
}
