package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"slotlink/shared/model"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldLinkID            = "link_id"
	FieldOwnerID           = "owner_id"
	FieldVisitorEmail      = "visitor_email"
	FieldProfileRef        = "profile_ref"
	FieldScheduledFor      = "scheduled_for"
	FieldDurationMinutes   = "duration_minutes"
	FieldAnswers           = "answers"
	FieldEnrichmentSummary = "enrichment_summary"
	FieldEnrichmentAt      = "enrichment_at"

	ConstraintOwnerScheduledFor = "bookings_owner_scheduled_for_key"
)

var errAnswersType = errors.New("answers: unsupported source type")

type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Answers is stored as a JSONB array.
type Answers []Answer

func (a Answers) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(a) //nolint:wrapcheck
}

func (a *Answers) Scan(src any) error {
	var raw []byte

	switch value := src.(type) {
	case nil:
		*a = Answers{}

		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return errAnswersType
	}

	return json.Unmarshal(raw, a) //nolint:wrapcheck
}

type Booking struct {
	ID                string     `db:"id"`
	LinkID            string     `db:"link_id"`
	OwnerID           string     `db:"owner_id"`
	VisitorEmail      string     `db:"visitor_email"`
	ProfileRef        *string    `db:"profile_ref"`
	ScheduledFor      time.Time  `db:"scheduled_for"`
	DurationMinutes   int        `db:"duration_minutes"`
	Answers           Answers    `db:"answers"`
	EnrichmentSummary *string    `db:"enrichment_summary"`
	EnrichmentAt      *time.Time `db:"enrichment_at"`
	model.Metadata
}

func (b Booking) EndsAt() time.Time {
	return b.ScheduledFor.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

func (b Booking) HasEnrichment() bool {
	return b.EnrichmentSummary != nil && *b.EnrichmentSummary != ""
}

// Detail is a booking joined with the link it was made through. Link columns are empty when the
// link has since been deleted.
type Detail struct {
	Booking
	LinkSlug            *string        `column:"slug"             db:"link_slug"             table:"links"`
	LinkMeetingLength   *int           `column:"meeting_length"   db:"link_meeting_length"   table:"links"`
	LinkCustomQuestions pq.StringArray `column:"custom_questions" db:"link_custom_questions" table:"links"`
}

func (Detail) GetJoinQuery() string {
	return "LEFT JOIN links ON links.id = bookings.link_id"
}
