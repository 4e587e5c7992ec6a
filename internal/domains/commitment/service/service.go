package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slotlink/infras/otel"
	"slotlink/infras/postgres"
	"slotlink/internal/domains/commitment/model"
	"slotlink/internal/domains/commitment/model/dto"
	"slotlink/internal/domains/commitment/repository"
	"slotlink/shared"
	"slotlink/shared/clock"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	"slotlink/shared/failure"
	gModel "slotlink/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxBusyRange bounds ListBusy queries.
const maxBusyRange = 366 * constant.HoursPerDay * time.Hour

// Ledger records when owners are already committed, from synced external calendars and from
// bookings made here.
type Ledger interface {
	ConnectCalendar(ctx context.Context, req dto.ConnectCalendarRequest) (dto.CalendarResponse, error)
	ListCalendars(ctx context.Context) (dto.GetCalendarsResponse, error)
	DisconnectCalendar(ctx context.Context, id string) error
	UpsertSynced(ctx context.Context, calendarID string, req dto.PushBusyRequest) (dto.PushBusyResponse, error)
	ListBusy(ctx context.Context, from, to time.Time) (dto.GetBusyResponse, error)

	// Used by the booking resolver with the owner passed explicitly.
	BusyBetween(ctx context.Context, owner string, from, to time.Time) ([]model.BusyInterval, error)
	EnsureSelfCalendar(ctx context.Context, owner string) (model.Calendar, error)
	InsertInternal(ctx context.Context, owner, calendarID string, start, end time.Time, sourceRef string) error
	DeleteForCalendar(ctx context.Context, calendarID string) error
}

type serviceImpl struct {
	calendarRepo repository.Calendar
	busyRepo     repository.BusyInterval
	transactor   postgres.Transactor
	clock        clock.Clock
	otel         otel.Otel
}

func New(
	calendarRepo repository.Calendar,
	busyRepo repository.BusyInterval,
	transactor postgres.Transactor,
	clock clock.Clock,
	otel otel.Otel,
) Ledger {
	return &serviceImpl{
		calendarRepo: calendarRepo,
		busyRepo:     busyRepo,
		transactor:   transactor,
		clock:        clock,
		otel:         otel,
	}
}

func (s *serviceImpl) ConnectCalendar(ctx context.Context, req dto.ConnectCalendarRequest) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConnectCalendar")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	calendar, err := s.calendarRepo.Upsert(ctx, req.ToModel(owner, s.clock.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to connect calendar")

		return res, fmt.Errorf("failed to connect calendar: %w", err)
	}

	res.FromModel(calendar)

	return res, nil
}

func (s *serviceImpl) ListCalendars(ctx context.Context) (res dto.GetCalendarsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListCalendars")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)
	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	calendars, err := s.calendarRepo.GetAll(ctx, params, shared.FilterByID(owner, model.FieldOwnerID, model.CalendarTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to list calendars")

		return res, fmt.Errorf("failed to list calendars: %w", err)
	}

	res.FromModels(calendars)

	return res, nil
}

// DisconnectCalendar removes a synced calendar together with its intervals. The self calendar holds
// booking commitments and stays.
func (s *serviceImpl) DisconnectCalendar(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DisconnectCalendar")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByOwnerAndID(owner, id, model.FieldOwnerID, model.FieldID, model.CalendarTableName)

	calendar, err := s.calendarRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get calendar")

		return fmt.Errorf("failed to get calendar: %w", err)
	}

	if calendar.ID == constant.Empty {
		return failure.NotFound("calendar not found") // nolint:wrapcheck
	}

	if calendar.IsSelf() {
		return failure.Validation("the bookings calendar cannot be disconnected") // nolint:wrapcheck
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.busyRepo.DeleteForCalendar(ctx, calendar.ID); err != nil {
			return err //nolint:wrapcheck
		}

		return s.calendarRepo.Delete(ctx, filter) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to disconnect calendar")

		return fmt.Errorf("failed to disconnect calendar: %w", err)
	}

	return nil
}

func (s *serviceImpl) UpsertSynced(ctx context.Context, calendarID string, req dto.PushBusyRequest) (res dto.PushBusyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertSynced")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	filter := shared.FilterByOwnerAndID(owner, calendarID, model.FieldOwnerID, model.FieldID, model.CalendarTableName)
	if role == constant.RoleInternal {
		filter = shared.FilterByID(calendarID, model.FieldID, model.CalendarTableName)
	}

	calendar, err := s.calendarRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get calendar")

		return res, fmt.Errorf("failed to get calendar: %w", err)
	}

	if calendar.ID == constant.Empty {
		return res, failure.NotFound("calendar not found") // nolint:wrapcheck
	}

	if calendar.IsSelf() {
		return res, failure.Validation("busy intervals cannot be pushed to the bookings calendar") // nolint:wrapcheck
	}

	actor := owner
	if actor == constant.Empty {
		actor = role
	}

	now := s.clock.Now()
	intervals := make([]model.BusyInterval, 0, len(req.Intervals))

	for _, item := range req.Intervals {
		interval, err := item.ToModel(calendar.ID, actor, now)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}

		intervals = append(intervals, interval)
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		return s.busyRepo.UpsertSynced(ctx, intervals) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("calendar", calendar.ID).Msg("failed to upsert busy intervals")

		return res, fmt.Errorf("failed to upsert busy intervals: %w", err)
	}

	log.Info().Str("calendar", calendar.ID).Int("intervals", len(intervals)).Msg("busy intervals synced")

	return dto.PushBusyResponse{CalendarID: calendar.ID, Upserted: len(intervals)}, nil
}

func (s *serviceImpl) ListBusy(ctx context.Context, from, to time.Time) (res dto.GetBusyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListBusy")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !from.Before(to) {
		return res, failure.Validation("from must be before to") // nolint:wrapcheck
	}

	if to.Sub(from) > maxBusyRange {
		return res, failure.Validation("range cannot exceed 366 days") // nolint:wrapcheck
	}

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	intervals, err := s.BusyBetween(ctx, owner, from, to)
	if err != nil {
		return res, err
	}

	res.From = from.UTC()
	res.To = to.UTC()
	res.FromModels(intervals)

	return res, nil
}

func (s *serviceImpl) BusyBetween(ctx context.Context, owner string, from, to time.Time) ([]model.BusyInterval, error) {
	intervals, err := s.busyRepo.ListBusy(ctx, owner, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to list busy intervals")

		return nil, fmt.Errorf("failed to list busy intervals: %w", err)
	}

	return intervals, nil
}

func (s *serviceImpl) EnsureSelfCalendar(ctx context.Context, owner string) (calendar model.Calendar, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureSelfCalendar")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldOwnerID, Value: owner, Operator: gDto.FilterOperatorEq, Table: model.CalendarTableName},
			gDto.Filter{Field: model.FieldSource, Value: model.SourceSelf, Operator: gDto.FilterOperatorEq, Table: model.CalendarTableName},
		},
	}

	calendar, err = s.calendarRepo.Get(ctx, filter)
	if err != nil {
		return calendar, fmt.Errorf("failed to get self calendar: %w", err)
	}

	if calendar.ID != constant.Empty {
		return calendar, nil
	}

	created, err := s.calendarRepo.InsertSelf(ctx, model.Calendar{
		ID:       uuid.NewString(),
		OwnerID:  owner,
		Name:     model.SelfCalendarName,
		Source:   model.SourceSelf,
		Metadata: gModel.NewMetadata(owner, s.clock.Now().UTC()),
	})
	if err != nil {
		return calendar, fmt.Errorf("failed to create self calendar: %w", err)
	}

	if created {
		log.Info().Str("owner", owner).Msg("self calendar created")
	}

	// Read back in both cases: a concurrent booking may have won the insert.
	calendar, err = s.calendarRepo.Get(ctx, filter)
	if err != nil {
		return calendar, fmt.Errorf("failed to get self calendar: %w", err)
	}

	if calendar.ID == constant.Empty {
		return calendar, fmt.Errorf("self calendar for owner %s missing after insert", owner)
	}

	return calendar, nil
}

func (s *serviceImpl) InsertInternal(ctx context.Context, owner, calendarID string, start, end time.Time, sourceRef string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".InsertInternal")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	inserted, err := s.busyRepo.InsertInternal(ctx, model.BusyInterval{
		ID:         uuid.NewString(),
		CalendarID: calendarID,
		SourceID:   sourceRef,
		StartTime:  start.UTC(),
		EndTime:    end.UTC(),
		Status:     model.StatusConfirmed,
		Origin:     model.OriginInternal,
		Metadata:   gModel.NewMetadata(owner, s.clock.Now().UTC()),
	})
	if err != nil {
		return fmt.Errorf("failed to insert internal busy interval: %w", err)
	}

	if !inserted {
		log.Debug().Str("source", sourceRef).Msg("internal busy interval already recorded")
	}

	return nil
}

func (s *serviceImpl) DeleteForCalendar(ctx context.Context, calendarID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteForCalendar")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.busyRepo.DeleteForCalendar(ctx, calendarID); err != nil {
		log.Error().Err(err).Msg("failed to delete busy intervals")

		return fmt.Errorf("failed to delete busy intervals: %w", err)
	}

	return nil
}
