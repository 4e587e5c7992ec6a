package model

import (
	"slotlink/shared/constant"
	"slotlink/shared/model"
	"slotlink/shared/timezone"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "links"
	EntityName = "link"

	FieldID               = "id"
	FieldOwnerID          = "owner_id"
	FieldSlug             = "slug"
	FieldMeetingLength    = "meeting_length"
	FieldMaxUses          = "max_uses"
	FieldExpirationDate   = "expiration_date"
	FieldMaxDaysInAdvance = "max_days_in_advance"
	FieldCustomQuestions  = "custom_questions"
	FieldUses             = "uses"

	ConstraintOwnerSlug = "links_owner_slug_key"
)

type Link struct {
	ID               string         `db:"id"`
	OwnerID          string         `db:"owner_id"`
	OwnerEmail       string         `db:"owner_email"`
	Slug             string         `db:"slug"`
	MeetingLength    int            `db:"meeting_length"`
	MaxUses          *int           `db:"max_uses"`
	ExpirationDate   *time.Time     `db:"expiration_date"`
	MaxDaysInAdvance int            `db:"max_days_in_advance"`
	CustomQuestions  pq.StringArray `db:"custom_questions"`
	Uses             int            `db:"uses"`
	model.Metadata
}

// IsExpired compares calendar dates only: a link expiring today still accepts bookings today.
func (l Link) IsExpired(now time.Time) bool {
	if l.ExpirationDate == nil {
		return false
	}

	exp := l.ExpirationDate
	expiry := time.Date(exp.Year(), exp.Month(), exp.Day(), 0, 0, 0, 0, timezone.GetLocation())

	return timezone.DateOf(now).After(expiry)
}

func (l Link) HasUsesLeft() bool {
	return l.MaxUses == nil || l.Uses < *l.MaxUses
}

// LatestStart is the last instant a meeting may start, inclusive.
func (l Link) LatestStart(now time.Time) time.Time {
	return now.Add(time.Duration(l.MaxDaysInAdvance) * constant.HoursPerDay * time.Hour)
}

func (l Link) Duration() time.Duration {
	return time.Duration(l.MeetingLength) * time.Minute
}
