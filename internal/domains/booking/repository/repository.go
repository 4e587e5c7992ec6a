package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"slotlink/infras/otel"
	"slotlink/infras/postgres"
	"slotlink/internal/domains/booking/model"
	"slotlink/shared"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	"slotlink/shared/failure"
	gRepo "slotlink/shared/repository"
	"time"
)

type Booking interface {
	// Insert reports SlotTaken when the owner already has a booking at the same instant.
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.Detail, error)
	// SetEnrichment overwrites any previous enrichment.
	SetEnrichment(ctx context.Context, id, summary string, at time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	detail gRepo.Repository[model.Detail]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.Detail](model.EntityName+"_detail", model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Insert(ctx context.Context, booking model.Booking) error {
	err := r.Repository.Insert(ctx, booking)
	if shared.IsUniqueViolation(err, model.ConstraintOwnerScheduledFor) {
		return failure.SlotTaken("this time slot is no longer available") // nolint:wrapcheck
	}

	return err //nolint:wrapcheck
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.Detail, error) {
	return r.detail.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) SetEnrichment(ctx context.Context, id, summary string, at time.Time) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.SetEnrichment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affected, err := r.UpdateAffected(ctx, map[string]any{
		model.FieldEnrichmentSummary: summary,
		model.FieldEnrichmentAt:      at.UTC(),
		constant.FieldModifiedAt:     at.UTC(),
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return err //nolint:wrapcheck
	}

	if affected == 0 {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return nil
}
