package dto

import (
	"fmt"
	"slotlink/internal/domains/commitment/model"
	gDto "slotlink/shared/dto"
	gModel "slotlink/shared/model"
	"slotlink/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type ConnectCalendarRequest struct {
	Name        string `json:"name"         validate:"required,max=255"`
	ExternalRef string `json:"external_ref" validate:"required,max=255"`
}

func (c *ConnectCalendarRequest) ToModel(owner string, now time.Time) model.Calendar {
	ref := strings.TrimSpace(c.ExternalRef)

	return model.Calendar{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		Name:        strings.TrimSpace(c.Name),
		Source:      model.SourceExternal,
		ExternalRef: &ref,
		Metadata:    gModel.NewMetadata(owner, now.UTC()),
	}
}

type CalendarResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Source      string  `json:"source"`
	ExternalRef *string `json:"external_ref,omitempty"`
	gDto.Metadata
}

func (r *CalendarResponse) FromModel(mod model.Calendar) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Source = mod.Source
	r.ExternalRef = mod.ExternalRef
	r.Metadata.FromModel(mod.Metadata)
}

type GetCalendarsResponse struct {
	Calendars []CalendarResponse `json:"calendars"`
}

func (r *GetCalendarsResponse) FromModels(models []model.Calendar) {
	r.Calendars = lo.Map(models, func(mod model.Calendar, _ int) CalendarResponse {
		var res CalendarResponse
		res.FromModel(mod)

		return res
	})
}

// BusyIntervalRequest is one interval pushed by the calendar sync collaborator.
type BusyIntervalRequest struct {
	SourceID string `json:"source_id" validate:"required,max=255"`
	Start    string `json:"start"     validate:"required"`
	End      string `json:"end"       validate:"required"`
	Status   string `json:"status"    validate:"omitempty,oneof=confirmed tentative cancelled"`
	Title    string `json:"title"     validate:"max=500"`
}

func (b *BusyIntervalRequest) ToModel(calendarID, actor string, now time.Time) (model.BusyInterval, error) {
	start, err := timezone.ParseInstant(b.Start)
	if err != nil {
		return model.BusyInterval{}, fmt.Errorf("start: %w", err)
	}

	end, err := timezone.ParseInstant(b.End)
	if err != nil {
		return model.BusyInterval{}, fmt.Errorf("end: %w", err)
	}

	if !start.Before(end) {
		return model.BusyInterval{}, fmt.Errorf("interval %s: start must be before end", b.SourceID)
	}

	status := b.Status
	if status == "" {
		status = model.StatusConfirmed
	}

	return model.BusyInterval{
		ID:         uuid.NewString(),
		CalendarID: calendarID,
		SourceID:   b.SourceID,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
		Origin:     model.OriginSynced,
		Title:      b.Title,
		Metadata:   gModel.NewMetadata(actor, now.UTC()),
	}, nil
}

type PushBusyRequest struct {
	Intervals []BusyIntervalRequest `json:"intervals" validate:"required,min=1,max=500,dive"`
}

type PushBusyResponse struct {
	CalendarID string `json:"calendar_id"`
	Upserted   int    `json:"upserted"`
}

type BusyIntervalResponse struct {
	ID         string    `json:"id"`
	CalendarID string    `json:"calendar_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
	Origin     string    `json:"origin"`
	Title      string    `json:"title,omitempty"`
}

func (r *BusyIntervalResponse) FromModel(mod model.BusyInterval) {
	r.ID = mod.ID
	r.CalendarID = mod.CalendarID
	r.Start = mod.StartTime.UTC()
	r.End = mod.EndTime.UTC()
	r.Status = mod.Status
	r.Origin = mod.Origin
	r.Title = mod.Title
}

type GetBusyResponse struct {
	From      time.Time              `json:"from"`
	To        time.Time              `json:"to"`
	Intervals []BusyIntervalResponse `json:"intervals"`
}

func (r *GetBusyResponse) FromModels(models []model.BusyInterval) {
	r.Intervals = lo.Map(models, func(mod model.BusyInterval, _ int) BusyIntervalResponse {
		var res BusyIntervalResponse
		res.FromModel(mod)

		return res
	})
}
