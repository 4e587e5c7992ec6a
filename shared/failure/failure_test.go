package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"slotlink/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		reason   string
		sentinel error
	}{
		{"not found", failure.NotFound("link not found"), http.StatusNotFound, failure.ReasonNotFound, failure.ErrNotFound},
		{"validation", failure.Validation("bad slug"), http.StatusBadRequest, failure.ReasonValidation, failure.ErrValidation},
		{"conflict", failure.Conflict("slug exists"), http.StatusConflict, failure.ReasonConflict, failure.ErrConflict},
		{"expired link", failure.ExpiredLink("expired"), http.StatusGone, failure.ReasonExpiredLink, failure.ErrExpiredLink},
		{"usage exceeded", failure.UsageExceeded("full"), http.StatusConflict, failure.ReasonUsageExceeded, failure.ErrUsageExceeded},
		{"too far in advance", failure.TooFarInAdvance("too far"), http.StatusUnprocessableEntity, failure.ReasonTooFarInAdvance, failure.ErrTooFarInAdvance},
		{"slot taken", failure.SlotTaken("taken"), http.StatusConflict, failure.ReasonSlotTaken, failure.ErrSlotTaken},
		{"upstream", failure.Upstream(errors.New("smtp down")), http.StatusBadGateway, failure.ReasonUpstream, failure.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.reason, failure.GetReason(tt.err))
			assert.ErrorIs(t, tt.err, tt.sentinel)

			wrapped := fmt.Errorf("failed to book: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.code, failure.GetCode(wrapped))
		})
	}
}

func TestFailure_IsDistinguishesReasons(t *testing.T) {
	err := failure.UsageExceeded("link is full")

	assert.ErrorIs(t, err, failure.ErrUsageExceeded)
	assert.NotErrorIs(t, err, failure.ErrSlotTaken)
	assert.NotErrorIs(t, err, failure.ErrExpiredLink)
	assert.NotErrorIs(t, failure.Unauthorized("nope"), failure.ErrNotFound)
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
	assert.NoError(t, failure.Upstream(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{name: "failure error", input: &failure.Failure{Code: http.StatusBadRequest, Message: "test"}, expected: http.StatusBadRequest},
		{name: "forbidden", input: failure.ForbiddenError, expected: http.StatusForbidden},
		{name: "regular error", input: errors.New("regular error"), expected: http.StatusInternalServerError},
		{name: "nil error", input: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestGetReason_PlainError(t *testing.T) {
	assert.Empty(t, failure.GetReason(errors.New("boom")))
	assert.Empty(t, failure.GetReason(failure.Unauthorized("token expired")))
}
