package validator_test

import (
	"slotlink/shared/failure"
	"slotlink/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type linkRequest struct {
	Slug          string   `json:"slug"           validate:"required,slug"`
	MeetingLength int      `json:"meeting_length" validate:"required,gt=0"`
	Email         string   `json:"email"          validate:"omitempty,email"`
	Questions     []string `json:"questions"      validate:"omitempty,dive,required"`
}

type windowRequest struct {
	Weekday   string `json:"weekday"    validate:"required,weekday"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time"   validate:"required,clock"`
}

func TestValidateStruct_Link(t *testing.T) {
	tests := []struct {
		name        string
		data        linkRequest
		expectError bool
	}{
		{name: "valid", data: linkRequest{Slug: "intro-call", MeetingLength: 30}},
		{name: "uppercase slug", data: linkRequest{Slug: "Intro", MeetingLength: 30}, expectError: true},
		{name: "slug with space", data: linkRequest{Slug: "intro call", MeetingLength: 30}, expectError: true},
		{name: "slug too long", data: linkRequest{Slug: strings.Repeat("a", 65), MeetingLength: 30}, expectError: true},
		{name: "zero length", data: linkRequest{Slug: "intro"}, expectError: true},
		{name: "bad email", data: linkRequest{Slug: "intro", MeetingLength: 30, Email: "nope"}, expectError: true},
		{name: "blank question", data: linkRequest{Slug: "intro", MeetingLength: 30, Questions: []string{""}}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError {
				assert.ErrorIs(t, err, failure.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct_Window(t *testing.T) {
	tests := []struct {
		name        string
		data        windowRequest
		expectError bool
	}{
		{name: "valid", data: windowRequest{Weekday: "monday", StartTime: "09:00", EndTime: "17:30"}},
		{name: "capitalized weekday", data: windowRequest{Weekday: "Friday", StartTime: "09:00", EndTime: "10:00"}},
		{name: "unknown weekday", data: windowRequest{Weekday: "someday", StartTime: "09:00", EndTime: "10:00"}, expectError: true},
		{name: "clock with seconds", data: windowRequest{Weekday: "monday", StartTime: "09:00:00", EndTime: "10:00"}, expectError: true},
		{name: "clock out of range", data: windowRequest{Weekday: "monday", StartTime: "25:00", EndTime: "10:00"}, expectError: true},
		{name: "single digit hour", data: windowRequest{Weekday: "monday", StartTime: "9:00", EndTime: "10:00"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct_MessageUsesJSONName(t *testing.T) {
	err := validator.ValidateStruct(&windowRequest{Weekday: "monday", StartTime: "9", EndTime: "10:00"})

	assert.EqualError(t, err, "start_time must be a wall clock time formatted as HH:MM")
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "slug", field: "team-sync-2", tag: "slug"},
		{name: "bad slug", field: "team_sync", tag: "slug", expectError: true},
		{name: "empty slug", field: "", tag: "slug", expectError: true},
		{name: "empty tag", field: "", tag: "empty"},
		{name: "non empty", field: "x", tag: "empty", expectError: true},
		{name: "email", field: "visitor@example.com", tag: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{name: "valid JSON", jsonBody: `{"slug":"intro-call","meeting_length":30}`},
		{name: "invalid value", jsonBody: `{"slug":"Intro Call","meeting_length":30}`, expectError: true},
		{name: "unknown field", jsonBody: `{"slug":"intro","meeting_length":30,"uses":5}`, expectError: true},
		{name: "malformed JSON", jsonBody: `{"slug":}`, expectError: true},
		{name: "empty body", jsonBody: ``, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data linkRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Equal(t, 400, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
