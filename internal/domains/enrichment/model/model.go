package model

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	ArchiveDirectory = "enrichments"

	SourceUpstream = "upstream"
	SourceFallback = "fallback"
)

type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Archive is the record kept in object storage for every enrichment written to a booking.
type Archive struct {
	BookingID  string          `json:"booking_id"`
	ProfileRef string          `json:"profile_ref,omitempty"`
	Answers    []QA            `json:"answers"`
	Source     string          `json:"source"`
	Summary    string          `json:"summary"`
	Upstream   json.RawMessage `json:"upstream,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// FallbackNote is the preparation note written when the enrichment service gives nothing usable.
// Pairs with an empty question or answer are left out.
func FallbackNote(profileSummary string, answers []QA) string {
	var note strings.Builder

	note.WriteString("Meeting Preparation Notes:\n\n")

	if profileSummary != "" {
		note.WriteString("Profile Context:\n")
		note.WriteString(profileSummary)
		note.WriteString("\n\n")
	}

	note.WriteString("Client Responses:\n")

	for _, qa := range answers {
		if qa.Question == "" || qa.Answer == "" {
			continue
		}

		note.WriteString("- ")
		note.WriteString(qa.Question)
		note.WriteString(": ")
		note.WriteString(qa.Answer)
		note.WriteString("\n")
	}

	return note.String()
}
