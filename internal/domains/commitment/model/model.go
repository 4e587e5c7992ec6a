package model

import (
	"slotlink/shared/model"
	"time"
)

const (
	CalendarTableName  = "calendars"
	CalendarEntityName = "calendar"

	BusyTableName  = "busy_intervals"
	BusyEntityName = "busy_interval"

	FieldID          = "id"
	FieldOwnerID     = "owner_id"
	FieldName        = "name"
	FieldSource      = "source"
	FieldExternalRef = "external_ref"

	FieldCalendarID = "calendar_id"
	FieldSourceID   = "source_id"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldStatus     = "status"
	FieldOrigin     = "origin"
	FieldTitle      = "title"
)

const (
	SourceExternal = "external"
	SourceSelf     = "self"

	SelfCalendarName = "Bookings"
)

const (
	StatusConfirmed = "confirmed"
	StatusTentative = "tentative"
	StatusCancelled = "cancelled"

	OriginSynced   = "synced"
	OriginInternal = "internal"
)

type Calendar struct {
	ID          string  `db:"id"`
	OwnerID     string  `db:"owner_id"`
	Name        string  `db:"name"`
	Source      string  `db:"source"`
	ExternalRef *string `db:"external_ref"`
	model.Metadata
}

func (c Calendar) IsSelf() bool {
	return c.Source == SourceSelf
}

type BusyInterval struct {
	ID         string    `db:"id"`
	CalendarID string    `db:"calendar_id"`
	SourceID   string    `db:"source_id"`
	StartTime  time.Time `db:"start_time"`
	EndTime    time.Time `db:"end_time"`
	Status     string    `db:"status"`
	Origin     string    `db:"origin"`
	Title      string    `db:"title"`
	model.Metadata
}

// Blocks reports whether the interval occupies any part of [start, end). Cancelled intervals never do.
func (b BusyInterval) Blocks(start, end time.Time) bool {
	if b.Status == StatusCancelled {
		return false
	}

	return b.StartTime.Before(end) && b.EndTime.After(start)
}
