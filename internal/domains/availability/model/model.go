package model

import (
	"slotlink/shared/model"
	"strings"
)

const (
	TableName  = "availability_windows"
	EntityName = "availability_window"

	FieldID        = "id"
	FieldOwnerID   = "owner_id"
	FieldWeekday   = "weekday"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
)

var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Window is a recurring weekly interval [StartTime, EndTime) in wall clock time.
type Window struct {
	ID        string `db:"id"`
	OwnerID   string `db:"owner_id"`
	Weekday   string `db:"weekday"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	model.Metadata
}

// Clock trims a postgres TIME value (HH:MM:SS) to HH:MM.
func Clock(value string) string {
	if len(value) > len("15:04") && strings.Count(value, ":") == 2 {
		return value[:len("15:04")]
	}

	return value
}
