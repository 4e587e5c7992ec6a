package service

import (
	"context"
	"errors"
	"fmt"
	"slotlink/infras/enricher"
	"slotlink/infras/otel"
	"slotlink/infras/s3"
	bookingModel "slotlink/internal/domains/booking/model"
	bookingRepo "slotlink/internal/domains/booking/repository"
	"slotlink/internal/domains/enrichment/model"
	"slotlink/internal/tasks"
	"slotlink/shared"
	"slotlink/shared/clock"
	"slotlink/shared/constant"
	"slotlink/shared/failure"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Enricher interface {
	// Enrich writes a preparation note to the booking, replacing any earlier one.
	Enrich(ctx context.Context, bookingID, profileRef string, answers []model.QA) error
	HandleTask(ctx context.Context, task tasks.Task) error
}

type serviceImpl struct {
	client      enricher.Client
	storage     s3.S3
	bookingRepo bookingRepo.Booking
	clock       clock.Clock
	otel        otel.Otel
}

func New(client enricher.Client, storage s3.S3, bookingRepo bookingRepo.Booking, clock clock.Clock, otel otel.Otel) Enricher {
	return &serviceImpl{
		client:      client,
		storage:     storage,
		bookingRepo: bookingRepo,
		clock:       clock,
		otel:        otel,
	}
}

func (s *serviceImpl) Enrich(ctx context.Context, bookingID, profileRef string, answers []model.QA) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Enrich")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	now := s.clock.Now().UTC()
	archive := model.Archive{
		BookingID:  bookingID,
		ProfileRef: profileRef,
		Answers:    answers,
		Source:     model.SourceFallback,
		CreatedAt:  now,
	}

	res, err := s.client.Enrich(ctx, enricher.Request{
		Email:      booking.VisitorEmail,
		ProfileRef: profileRef,
		Answers: lo.Map(answers, func(qa model.QA, _ int) enricher.QA {
			return enricher.QA{Question: qa.Question, Answer: qa.Answer}
		}),
	})

	switch {
	case errors.Is(err, enricher.ErrDisabled):
		log.Debug().Str("booking", bookingID).Msg("enrichment service disabled, writing fallback note")
	case err != nil:
		scope.AddEvent("enrichment upstream failed")
		log.Warn().Err(err).Str("booking", bookingID).Msg("enrichment failed, writing fallback note")
	case res.Summary != "":
		archive.Source = model.SourceUpstream
		archive.Summary = res.Summary
		archive.Upstream = res.Raw
	}

	if archive.Source == model.SourceFallback {
		archive.Summary = model.FallbackNote(res.ProfileSummary, answers)
	}

	s.archive(ctx, archive)

	if err = s.bookingRepo.SetEnrichment(ctx, bookingID, archive.Summary, now); err != nil {
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to store enrichment")

		return fmt.Errorf("failed to store enrichment: %w", err)
	}

	scope.SetAttribute("enrichment.source", archive.Source)
	log.Info().Str("booking", bookingID).Str("source", archive.Source).Msg("booking enriched")

	return nil
}

func (s *serviceImpl) HandleTask(ctx context.Context, task tasks.Task) error {
	answers := lo.Map(task.Answers, func(qa tasks.QA, _ int) model.QA {
		return model.QA{Question: qa.Question, Answer: qa.Answer}
	})

	return s.Enrich(ctx, task.BookingID, task.ProfileRef, answers)
}

func (s *serviceImpl) archive(ctx context.Context, archive model.Archive) {
	if !s.storage.Enabled() {
		return
	}

	if _, err := s.storage.PutJSON(ctx, model.ArchiveDirectory, archive.BookingID, archive); err != nil {
		log.Warn().Err(err).Str("booking", archive.BookingID).Msg("failed to archive enrichment")
	}
}
