package tasks

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindNotifyOwner   Kind = "notify_owner"
	KindEnrichProfile Kind = "enrich_profile"
)

type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Task is the envelope shared by every dispatcher. It is also the kafka message value.
type Task struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	BookingID  string    `json:"booking_id"`
	ProfileRef string    `json:"profile_ref,omitempty"`
	Answers    []QA      `json:"answers,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

func NotifyOwner(bookingID string, now time.Time) Task {
	return Task{
		ID:         uuid.NewString(),
		Kind:       KindNotifyOwner,
		BookingID:  bookingID,
		EnqueuedAt: now.UTC(),
	}
}

func EnrichProfile(bookingID, profileRef string, answers []QA, now time.Time) Task {
	return Task{
		ID:         uuid.NewString(),
		Kind:       KindEnrichProfile,
		BookingID:  bookingID,
		ProfileRef: profileRef,
		Answers:    answers,
		EnqueuedAt: now.UTC(),
	}
}
