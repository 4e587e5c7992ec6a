package service

import (
	"context"
	"errors"
	"fmt"
	"slotlink/infras/mailer"
	"slotlink/infras/otel"
	bookingModel "slotlink/internal/domains/booking/model"
	bookingRepo "slotlink/internal/domains/booking/repository"
	linkModel "slotlink/internal/domains/link/model"
	linkRepo "slotlink/internal/domains/link/repository"
	"slotlink/internal/domains/notification/model"
	"slotlink/internal/tasks"
	"slotlink/shared"
	"slotlink/shared/constant"
	"slotlink/shared/failure"
	"slotlink/shared/timezone"

	"github.com/rs/zerolog/log"
)

var errNotSent = errors.New("owner notification was not sent")

type Notifier interface {
	// NotifyOwner reports whether the message was handed to the mail server. It never fails the caller.
	NotifyOwner(ctx context.Context, ownerEmail string, summary model.BookingSummary) bool
	HandleTask(ctx context.Context, task tasks.Task) error
}

type serviceImpl struct {
	mailer      mailer.Mailer
	bookingRepo bookingRepo.Booking
	linkRepo    linkRepo.Link
	otel        otel.Otel
}

func New(mailer mailer.Mailer, bookingRepo bookingRepo.Booking, linkRepo linkRepo.Link, otel otel.Otel) Notifier {
	return &serviceImpl{
		mailer:      mailer,
		bookingRepo: bookingRepo,
		linkRepo:    linkRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) NotifyOwner(ctx context.Context, ownerEmail string, summary model.BookingSummary) bool {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".NotifyOwner")
	defer scope.End()

	if !s.mailer.Enabled() {
		log.Warn().Str("booking", summary.BookingID).Msg("owner notification skipped: SMTP is not configured")

		return false
	}

	if ownerEmail == constant.Empty {
		log.Warn().Str("booking", summary.BookingID).Msg("owner notification skipped: owner has no email")

		return false
	}

	if err := s.mailer.Send(ctx, BuildBookingEmail(ownerEmail, summary, timezone.GetLocation())); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking", summary.BookingID).Msg("failed to send owner notification")

		return false
	}

	log.Info().Str("booking", summary.BookingID).Msg("owner notified")

	return true
}

func (s *serviceImpl) HandleTask(ctx context.Context, task tasks.Task) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleNotifyOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(task.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	link, err := s.linkRepo.Get(ctx, shared.FilterByID(booking.LinkID, linkModel.FieldID, linkModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get link: %w", err)
	}

	if link.ID == constant.Empty {
		log.Warn().Str("booking", booking.ID).Msg("link deleted before the owner could be notified")

		return nil
	}

	if !s.mailer.Enabled() {
		log.Debug().Str("booking", booking.ID).Msg("mailer disabled, notification skipped")

		return nil
	}

	summary := model.BookingSummary{
		BookingID:       booking.ID,
		LinkSlug:        link.Slug,
		VisitorEmail:    booking.VisitorEmail,
		Start:           booking.ScheduledFor,
		DurationMinutes: booking.DurationMinutes,
		Answers:         booking.Answers,
	}

	if booking.ProfileRef != nil {
		summary.ProfileRef = *booking.ProfileRef
	}

	if !s.NotifyOwner(ctx, link.OwnerEmail, summary) {
		return failure.Upstream(errNotSent) // nolint:wrapcheck
	}

	return nil
}
