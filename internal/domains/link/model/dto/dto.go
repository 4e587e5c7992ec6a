package dto

import (
	"slotlink/internal/domains/link/model"
	"slotlink/shared"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	gModel "slotlink/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateLinkRequest struct {
	Slug             string   `json:"slug"                validate:"required,max=64"`
	MeetingLength    int      `json:"meeting_length"      validate:"required,gt=0,lte=1440"`
	MaxUses          *int     `json:"max_uses"            validate:"omitempty,gt=0"`
	ExpirationDate   *string  `json:"expiration_date"     validate:"omitempty,datetime=2006-01-02"`
	MaxDaysInAdvance int      `json:"max_days_in_advance" validate:"omitempty,gt=0,lte=3650"`
	CustomQuestions  []string `json:"custom_questions"    validate:"omitempty,max=20,dive,required,max=500"`
}

// Normalize lowercases the slug and trims the questions.
func (c *CreateLinkRequest) Normalize() {
	c.Slug = strings.ToLower(strings.TrimSpace(c.Slug))

	for i, question := range c.CustomQuestions {
		c.CustomQuestions[i] = strings.TrimSpace(question)
	}
}

func (c *CreateLinkRequest) ToModel(owner, ownerEmail string, defaultMaxDays int, now time.Time) (model.Link, error) {
	link := model.Link{
		ID:               uuid.NewString(),
		OwnerID:          owner,
		OwnerEmail:       ownerEmail,
		Slug:             c.Slug,
		MeetingLength:    c.MeetingLength,
		MaxUses:          c.MaxUses,
		MaxDaysInAdvance: c.MaxDaysInAdvance,
		CustomQuestions:  pq.StringArray(c.CustomQuestions),
		Uses:             0,
		Metadata:         gModel.NewMetadata(owner, now.UTC()),
	}

	if link.MaxDaysInAdvance == 0 {
		link.MaxDaysInAdvance = defaultMaxDays
	}

	if link.CustomQuestions == nil {
		link.CustomQuestions = pq.StringArray{}
	}

	if c.ExpirationDate != nil {
		date, err := time.Parse(constant.DateOnlyFormat, *c.ExpirationDate)
		if err != nil {
			return link, err //nolint:wrapcheck
		}

		link.ExpirationDate = &date
	}

	return link, nil
}

// UpdateLinkRequest never carries uses or created_at; zero fields are left untouched.
type UpdateLinkRequest struct {
	Slug             string         `db:"slug"                json:"slug"                validate:"omitempty,max=64"`
	MeetingLength    int            `db:"meeting_length"      json:"meeting_length"      validate:"omitempty,gt=0,lte=1440"`
	MaxUses          *int           `db:"max_uses"            json:"max_uses"            validate:"omitempty,gt=0"`
	ExpirationDate   *string        `db:"expiration_date"     json:"expiration_date"     validate:"omitempty,datetime=2006-01-02"`
	MaxDaysInAdvance int            `db:"max_days_in_advance" json:"max_days_in_advance" validate:"omitempty,gt=0,lte=3650"`
	CustomQuestions  pq.StringArray `db:"custom_questions"    json:"custom_questions"    validate:"omitempty,max=20,dive,required,max=500"`
}

func (u *UpdateLinkRequest) Normalize() {
	u.Slug = strings.ToLower(strings.TrimSpace(u.Slug))
}

func (u *UpdateLinkRequest) IsEmpty() bool {
	return u.Slug == "" && u.MeetingLength == 0 && u.MaxUses == nil && u.ExpirationDate == nil &&
		u.MaxDaysInAdvance == 0 && u.CustomQuestions == nil
}

type LinkResponse struct {
	ID               string   `json:"id"`
	OwnerID          string   `json:"owner_id"`
	Slug             string   `json:"slug"`
	MeetingLength    int      `json:"meeting_length"`
	MaxUses          *int     `json:"max_uses"`
	ExpirationDate   *string  `json:"expiration_date"`
	MaxDaysInAdvance int      `json:"max_days_in_advance"`
	CustomQuestions  []string `json:"custom_questions"`
	Uses             int      `json:"uses"`
	RemainingUses    *int     `json:"remaining_uses"`
	gDto.Metadata
}

func (r *LinkResponse) FromModel(model model.Link) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Slug = model.Slug
	r.MeetingLength = model.MeetingLength
	r.MaxUses = model.MaxUses
	r.MaxDaysInAdvance = model.MaxDaysInAdvance
	r.CustomQuestions = []string(model.CustomQuestions)
	r.Uses = model.Uses
	r.Metadata.FromModel(model.Metadata)

	if r.CustomQuestions == nil {
		r.CustomQuestions = []string{}
	}

	if model.ExpirationDate != nil {
		date := model.ExpirationDate.Format(constant.DateOnlyFormat)
		r.ExpirationDate = &date
	}

	if model.MaxUses != nil {
		remaining := max(*model.MaxUses-model.Uses, 0)
		r.RemainingUses = &remaining
	}
}

type GetLinksResponse struct {
	Links     []LinkResponse `json:"links"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetLinksResponse) FromModels(models []model.Link, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Links = make([]LinkResponse, len(models))
	for i, mod := range models {
		r.Links[i].FromModel(mod)
	}
}

type UsageResponse struct {
	ID   string `json:"id"`
	Uses int    `json:"uses"`
}

