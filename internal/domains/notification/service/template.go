package service

import (
	"fmt"
	"html"
	"slotlink/infras/mailer"
	"slotlink/internal/domains/notification/model"
	"strings"
	"time"
)

const (
	subjectNewBooking = "New Meeting Scheduled"
	displayTimeLayout = "Monday, January 02, 2006 at 03:04 PM MST"
)

// BuildBookingEmail renders the owner notification. Visitor supplied values are escaped in the HTML part.
func BuildBookingEmail(ownerEmail string, summary model.BookingSummary, location *time.Location) mailer.Message {
	when := summary.Start.In(location).Format(displayTimeLayout)

	var text strings.Builder

	fmt.Fprintf(&text, "A new meeting has been scheduled with %s.\n\n", summary.VisitorEmail)
	fmt.Fprintf(&text, "Date and Time: %s\n", when)
	fmt.Fprintf(&text, "Duration: %d minutes\n", summary.DurationMinutes)
	fmt.Fprintf(&text, "Client Email: %s\n", summary.VisitorEmail)

	if summary.ProfileRef != "" {
		fmt.Fprintf(&text, "Profile: %s\n", summary.ProfileRef)
	}

	if summary.LinkSlug != "" {
		fmt.Fprintf(&text, "Booked through: %s\n", summary.LinkSlug)
	}

	var details strings.Builder

	fmt.Fprintf(&details, `<li><strong>Date and Time:</strong> %s</li>`, html.EscapeString(when))
	fmt.Fprintf(&details, `<li><strong>Duration:</strong> %d minutes</li>`, summary.DurationMinutes)
	fmt.Fprintf(&details, `<li><strong>Client Email:</strong> %s</li>`, html.EscapeString(summary.VisitorEmail))

	if summary.ProfileRef != "" {
		ref := html.EscapeString(summary.ProfileRef)
		fmt.Fprintf(&details, `<li><strong>Profile:</strong> <a href="%s">%s</a></li>`, ref, ref)
	}

	var responses strings.Builder

	if len(summary.Answers) > 0 {
		text.WriteString("\nClient's Responses:\n")
		responses.WriteString(`<div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 15px 0;">`)
		responses.WriteString(`<h3 style="margin-top: 0; color: #4a5568;">Client's Responses:</h3><ul style="padding-left: 20px;">`)

		for i, answer := range summary.Answers {
			question := answer.Question
			if question == "" {
				question = fmt.Sprintf("Question %d", i+1)
			}

			fmt.Fprintf(&text, "- %s: %s\n", question, answer.Answer)
			fmt.Fprintf(&responses, `<li><strong>%s:</strong> %s</li>`, html.EscapeString(question), html.EscapeString(answer.Answer))
		}

		responses.WriteString(`</ul></div>`)
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eee; border-radius: 5px;">
        <h2 style="color: #4a5568; border-bottom: 1px solid #eee; padding-bottom: 10px;">%s</h2>
        <p>A new meeting has been scheduled with <strong>%s</strong></p>
        <div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 15px 0;">
            <h3 style="margin-top: 0; color: #4a5568;">Meeting Details:</h3>
            <ul style="padding-left: 20px;">%s</ul>
        </div>
        %s
        <p style="font-size: 0.9em; color: #718096; margin-top: 30px; text-align: center;">
            This is an automated notification from your scheduling system.
        </p>
    </div>
</body>
</html>`,
		subjectNewBooking, html.EscapeString(summary.VisitorEmail), details.String(), responses.String())

	return mailer.Message{
		To:       []string{ownerEmail},
		Subject:  subjectNewBooking,
		TextBody: text.String(),
		HTMLBody: htmlBody,
	}
}
