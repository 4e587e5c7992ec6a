package repository

//go:generate go run go.uber.org/mock/mockgen -source=./calendar.go -destination=../mocks/calendar_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slotlink/infras/otel"
	"slotlink/infras/postgres"
	"slotlink/internal/domains/commitment/model"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	"slotlink/shared/logger"
	gRepo "slotlink/shared/repository"
)

type Calendar interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Calendar, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Calendar, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// Upsert registers an external calendar or renames the one already registered under the same ref.
	Upsert(ctx context.Context, calendar model.Calendar) (model.Calendar, error)
	// InsertSelf creates the owner's self calendar unless it already exists.
	InsertSelf(ctx context.Context, calendar model.Calendar) (bool, error)
}

type calendarRepositoryImpl struct {
	gRepo.Repository[model.Calendar]
	db   *postgres.Connection
	otel otel.Otel
}

func NewCalendar(db *postgres.Connection, otel otel.Otel) Calendar {
	return &calendarRepositoryImpl{
		Repository: gRepo.NewRepository[model.Calendar](model.CalendarEntityName, model.CalendarTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *calendarRepositoryImpl) Upsert(ctx context.Context, calendar model.Calendar) (res model.Calendar, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".calendar.Upsert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := fmt.Sprintf(`INSERT INTO %s (id, owner_id, name, source, external_ref, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :owner_id, :name, :source, :external_ref, :created_at, :modified_at, :created_by, :modified_by)
		ON CONFLICT (owner_id, external_ref) DO UPDATE SET name = EXCLUDED.name, modified_at = EXCLUDED.modified_at, modified_by = EXCLUDED.modified_by
		RETURNING id, owner_id, name, source, external_ref, created_at, modified_at, created_by, modified_by`, model.CalendarTableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := r.db.Writer(ctx).PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to prepare statement (calendar): %w", err)
	}
	defer stmt.Close()

	if err = stmt.GetContext(ctx, &res, calendar); err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to upsert calendar: %w", err)
	}

	return res, nil
}

func (r *calendarRepositoryImpl) InsertSelf(ctx context.Context, calendar model.Calendar) (bool, error) {
	// The partial unique index on (owner_id) WHERE source = 'self' is the arbiter.
	return r.InsertIgnore(ctx, calendar) //nolint:wrapcheck
}
