package repository

//go:generate go run go.uber.org/mock/mockgen -source=./busy.go -destination=../mocks/busy_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slotlink/infras/otel"
	"slotlink/infras/postgres"
	"slotlink/internal/domains/commitment/model"
	"slotlink/shared"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	"slotlink/shared/logger"
	gRepo "slotlink/shared/repository"
	"time"
)

type BusyInterval interface {
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// UpsertSynced writes every interval keyed by (calendar_id, source_id). Intervals missing from the
	// batch are left alone.
	UpsertSynced(ctx context.Context, intervals []model.BusyInterval) error
	// ListBusy returns the intervals of all the owner's calendars that intersect [from, to).
	ListBusy(ctx context.Context, owner string, from, to time.Time) ([]model.BusyInterval, error)
	InsertInternal(ctx context.Context, interval model.BusyInterval) (bool, error)
	DeleteForCalendar(ctx context.Context, calendarID string) error
}

type busyRepositoryImpl struct {
	gRepo.Repository[model.BusyInterval]
	db   *postgres.Connection
	otel otel.Otel
}

func NewBusyInterval(db *postgres.Connection, otel otel.Otel) BusyInterval {
	return &busyRepositoryImpl{
		Repository: gRepo.NewRepository[model.BusyInterval](model.BusyEntityName, model.BusyTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *busyRepositoryImpl) UpsertSynced(ctx context.Context, intervals []model.BusyInterval) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".busy_interval.UpsertSynced")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := fmt.Sprintf(`INSERT INTO %s (id, calendar_id, source_id, start_time, end_time, status, origin, title, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :calendar_id, :source_id, :start_time, :end_time, :status, :origin, :title, :created_at, :modified_at, :created_by, :modified_by)
		ON CONFLICT (calendar_id, source_id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			status = EXCLUDED.status,
			title = EXCLUDED.title,
			modified_at = EXCLUDED.modified_at,
			modified_by = EXCLUDED.modified_by`, model.BusyTableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	exec := r.db.Writer(ctx)

	for _, interval := range intervals {
		if _, err = exec.NamedExecContext(ctx, query, interval); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to upsert busy interval %s: %w", interval.SourceID, err)
		}
	}

	return nil
}

func (r *busyRepositoryImpl) ListBusy(ctx context.Context, owner string, from, to time.Time) (intervals []model.BusyInterval, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".busy_interval.ListBusy")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := fmt.Sprintf(`SELECT b.id, b.calendar_id, b.source_id, b.start_time, b.end_time, b.status, b.origin, b.title,
			b.created_at, b.modified_at, b.created_by, b.modified_by
		FROM %s b JOIN %s c ON c.id = b.calendar_id
		WHERE c.owner_id = $1 AND b.start_time < $3 AND b.end_time > $2
		ORDER BY b.start_time ASC`, model.BusyTableName, model.CalendarTableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	intervals = []model.BusyInterval{}

	if err = r.db.Reader(ctx).SelectContext(ctx, &intervals, query, owner, from.UTC(), to.UTC()); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list busy intervals: %w", err)
	}

	return intervals, nil
}

func (r *busyRepositoryImpl) InsertInternal(ctx context.Context, interval model.BusyInterval) (bool, error) {
	return r.InsertIgnore(ctx, interval, model.FieldCalendarID, model.FieldSourceID) //nolint:wrapcheck
}

func (r *busyRepositoryImpl) DeleteForCalendar(ctx context.Context, calendarID string) error {
	return r.Delete(ctx, shared.FilterByID(calendarID, model.FieldCalendarID, model.BusyTableName)) //nolint:wrapcheck
}
