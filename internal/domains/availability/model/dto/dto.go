package dto

import (
	"slotlink/internal/domains/availability/model"
	gDto "slotlink/shared/dto"
	gModel "slotlink/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type WindowRequest struct {
	Weekday   string `json:"weekday"    validate:"required,weekday"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time"   validate:"required,clock"`
}

func (w *WindowRequest) ToModel(owner string, now time.Time) model.Window {
	return model.Window{
		ID:        uuid.NewString(),
		OwnerID:   owner,
		Weekday:   strings.ToLower(w.Weekday),
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		Metadata:  gModel.NewMetadata(owner, now.UTC()),
	}
}

type AddWindowsRequest struct {
	Windows []WindowRequest `json:"windows" validate:"required,min=1,max=100,dive"`
}

type WindowResponse struct {
	ID        string `json:"id"`
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	gDto.Metadata
}

func (r *WindowResponse) FromModel(mod model.Window) {
	r.ID = mod.ID
	r.Weekday = mod.Weekday
	r.StartTime = model.Clock(mod.StartTime)
	r.EndTime = model.Clock(mod.EndTime)
	r.Metadata.FromModel(mod.Metadata)
}

type GetWindowsResponse struct {
	Windows []WindowResponse `json:"windows"`
}

func (r *GetWindowsResponse) FromModels(models []model.Window) {
	r.Windows = lo.Map(models, func(mod model.Window, _ int) WindowResponse {
		var res WindowResponse
		res.FromModel(mod)

		return res
	})
}

// Interval is a window stripped to its wall clock bounds.
type Interval struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// GroupByWeekday indexes windows by weekday, every weekday present even when empty.
func GroupByWeekday(models []model.Window) map[string][]Interval {
	grouped := lo.GroupBy(models, func(mod model.Window) string { return mod.Weekday })

	res := make(map[string][]Interval, len(model.Weekdays))

	for _, day := range model.Weekdays {
		res[day] = lo.Map(grouped[day], func(mod model.Window, _ int) Interval {
			return Interval{StartTime: model.Clock(mod.StartTime), EndTime: model.Clock(mod.EndTime)}
		})
	}

	return res
}
