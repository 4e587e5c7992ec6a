package service_test

import (
	"context"
	"errors"
	"slotlink/infras/mailer"
	mailerMocks "slotlink/infras/mailer/mocks"
	otelMocks "slotlink/infras/otel/mocks"
	bookingMocks "slotlink/internal/domains/booking/mocks"
	bookingModel "slotlink/internal/domains/booking/model"
	linkMocks "slotlink/internal/domains/link/mocks"
	linkModel "slotlink/internal/domains/link/model"
	"slotlink/internal/domains/notification/model"
	"slotlink/internal/domains/notification/service"
	"slotlink/internal/tasks"
	"slotlink/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	mailer   *mailerMocks.MockMailer
	bookings *bookingMocks.MockBooking
	links    *linkMocks.MockLink
	svc      service.Notifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		mailer:   mailerMocks.NewMockMailer(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		links:    linkMocks.NewMockLink(ctrl),
	}
	f.svc = service.New(f.mailer, f.bookings, f.links, otelMocks.NewOtel())

	return f
}

func TestNotifyOwner(t *testing.T) {
	summary := model.BookingSummary{BookingID: "b-1", VisitorEmail: "ada@example.com", DurationMinutes: 30}

	tests := []struct {
		name     string
		owner    string
		setup    func(f fixture)
		expected bool
	}{
		{
			name:  "sent",
			owner: "owner@example.com",
			setup: func(f fixture) {
				f.mailer.EXPECT().Enabled().Return(true)
				f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
			},
			expected: true,
		},
		{
			name:  "mailer disabled",
			owner: "owner@example.com",
			setup: func(f fixture) {
				f.mailer.EXPECT().Enabled().Return(false)
			},
			expected: false,
		},
		{
			name:  "no owner address",
			owner: "",
			setup: func(f fixture) {
				f.mailer.EXPECT().Enabled().Return(true)
			},
			expected: false,
		},
		{
			name:  "send fails",
			owner: "owner@example.com",
			setup: func(f fixture) {
				f.mailer.EXPECT().Enabled().Return(true)
				f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			assert.Equal(t, tt.expected, f.svc.NotifyOwner(context.Background(), tt.owner, summary))
		})
	}
}

func TestHandleTask(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	booking := bookingModel.Booking{
		ID:              "b-1",
		LinkID:          "l-1",
		OwnerID:         "owner-1",
		VisitorEmail:    "ada@example.com",
		ScheduledFor:    now.Add(24 * time.Hour),
		DurationMinutes: 30,
	}
	link := linkModel.Link{ID: "l-1", OwnerEmail: "owner@example.com", Slug: "intro-call"}

	t.Run("sends the notification", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.links.EXPECT().Get(gomock.Any(), gomock.Any()).Return(link, nil)
		f.mailer.EXPECT().Enabled().Return(true).Times(2)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
			assert.Equal(t, []string{"owner@example.com"}, msg.To)
			assert.Contains(t, msg.TextBody, "Booked through: intro-call")

			return nil
		})

		require.NoError(t, f.svc.HandleTask(context.Background(), tasks.NotifyOwner("b-1", now)))
	})

	t.Run("booking missing", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		err := f.svc.HandleTask(context.Background(), tasks.NotifyOwner("b-1", now))
		assert.ErrorIs(t, err, failure.ErrNotFound)
	})

	t.Run("link deleted", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.links.EXPECT().Get(gomock.Any(), gomock.Any()).Return(linkModel.Link{}, nil)

		assert.NoError(t, f.svc.HandleTask(context.Background(), tasks.NotifyOwner("b-1", now)))
	})

	t.Run("mailer disabled", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.links.EXPECT().Get(gomock.Any(), gomock.Any()).Return(link, nil)
		f.mailer.EXPECT().Enabled().Return(false)

		assert.NoError(t, f.svc.HandleTask(context.Background(), tasks.NotifyOwner("b-1", now)))
	})

	t.Run("send fails", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.links.EXPECT().Get(gomock.Any(), gomock.Any()).Return(link, nil)
		f.mailer.EXPECT().Enabled().Return(true).Times(2)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("timeout"))

		err := f.svc.HandleTask(context.Background(), tasks.NotifyOwner("b-1", now))
		assert.ErrorIs(t, err, failure.ErrUpstream)
	})
}
