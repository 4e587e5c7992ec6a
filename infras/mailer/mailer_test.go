package mailer_test

import (
	"context"
	"slotlink/config"
	"slotlink/infras/mailer"
	"slotlink/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		message mailer.Message
		wantErr bool
	}{
		{
			name:    "text body",
			from:    "noreply@example.com",
			message: mailer.Message{To: []string{" owner@example.com "}, Subject: "New booking", TextBody: "hello"},
		},
		{
			name:    "text and html",
			from:    "noreply@example.com",
			message: mailer.Message{To: []string{"owner@example.com"}, Subject: "New booking", TextBody: "hi", HTMLBody: "<p>hi</p>"},
		},
		{
			name:    "missing from",
			message: mailer.Message{To: []string{"owner@example.com"}, Subject: "s", TextBody: "b"},
			wantErr: true,
		},
		{
			name:    "blank recipients",
			from:    "noreply@example.com",
			message: mailer.Message{To: []string{" "}, Subject: "s", TextBody: "b"},
			wantErr: true,
		},
		{
			name:    "missing subject",
			from:    "noreply@example.com",
			message: mailer.Message{To: []string{"owner@example.com"}, TextBody: "b"},
			wantErr: true,
		},
		{
			name:    "missing body",
			from:    "noreply@example.com",
			message: mailer.Message{To: []string{"owner@example.com"}, Subject: "s"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := mailer.BuildMessage(tt.from, tt.message)
			if tt.wantErr {
				assert.ErrorIs(t, err, mailer.ErrInvalidMessage)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, []string{"owner@example.com"}, msg.GetHeader("To"))
			assert.Equal(t, []string{tt.message.Subject}, msg.GetHeader("Subject"))
		})
	}
}

func TestMailer_Disabled(t *testing.T) {
	m := mailer.New(&config.Config{}, mocks.NewOtel())

	assert.False(t, m.Enabled())
	assert.ErrorIs(t, m.Send(context.Background(), mailer.Message{}), mailer.ErrDisabled)
}
