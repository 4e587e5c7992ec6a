package failure

import (
	"errors"
	"net/http"
)

// Reason values are stable identifiers clients can switch on.
const (
	ReasonNotFound        = "not_found"
	ReasonValidation      = "validation"
	ReasonConflict        = "conflict"
	ReasonExpiredLink     = "expired_link"
	ReasonUsageExceeded   = "usage_exceeded"
	ReasonTooFarInAdvance = "too_far_in_advance"
	ReasonSlotTaken       = "slot_taken"
	ReasonUpstream        = "upstream_service"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// Is matches failures carrying the same reason, so callers can use errors.Is with the sentinels below.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	return e.Reason != "" && e.Reason == other.Reason
}

// Sentinels for errors.Is checks against domain failures.
var (
	ErrNotFound        = &Failure{Reason: ReasonNotFound}
	ErrValidation      = &Failure{Reason: ReasonValidation}
	ErrConflict        = &Failure{Reason: ReasonConflict}
	ErrExpiredLink     = &Failure{Reason: ReasonExpiredLink}
	ErrUsageExceeded   = &Failure{Reason: ReasonUsageExceeded}
	ErrTooFarInAdvance = &Failure{Reason: ReasonTooFarInAdvance}
	ErrSlotTaken       = &Failure{Reason: ReasonSlotTaken}
	ErrUpstream        = &Failure{Reason: ReasonUpstream}
)

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Reason:  ReasonValidation,
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Reason:  ReasonValidation,
	}
}

// Validation is an alias of BadRequestFromString for malformed domain input.
func Validation(msg string) error {
	return BadRequestFromString(msg)
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return &Failure{
		Code:    http.StatusNotImplemented,
		Message: methodName,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
		Reason:  ReasonNotFound,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
		Reason:  ReasonConflict,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// ExpiredLink is returned when a link is past its expiration date.
func ExpiredLink(msg string) error {
	return &Failure{
		Code:    http.StatusGone,
		Message: msg,
		Reason:  ReasonExpiredLink,
	}
}

// UsageExceeded is returned when a link has no uses left.
func UsageExceeded(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: msg,
		Reason:  ReasonUsageExceeded,
	}
}

// TooFarInAdvance is returned when the requested start lies beyond the link's booking window.
func TooFarInAdvance(msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: msg,
		Reason:  ReasonTooFarInAdvance,
	}
}

// SlotTaken is returned when the owner already has a booking at the requested instant.
func SlotTaken(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: msg,
		Reason:  ReasonSlotTaken,
	}
}

// Upstream wraps a collaborator failure.
func Upstream(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusBadGateway,
		Message: err.Error(),
		Reason:  ReasonUpstream,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the machine readable reason of an error, or an empty string.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ""
}
