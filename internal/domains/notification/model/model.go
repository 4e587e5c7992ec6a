package model

import (
	bookingModel "slotlink/internal/domains/booking/model"
	"time"
)

// BookingSummary is what the owner is told about a new booking.
type BookingSummary struct {
	BookingID       string
	LinkSlug        string
	VisitorEmail    string
	ProfileRef      string
	Start           time.Time
	DurationMinutes int
	Answers         []bookingModel.Answer
}
