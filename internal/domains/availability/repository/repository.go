package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"slotlink/infras/otel"
	"slotlink/infras/postgres"
	"slotlink/internal/domains/availability/model"
	gDto "slotlink/shared/dto"
	gRepo "slotlink/shared/repository"
)

type Availability interface {
	InsertBulk(ctx context.Context, models []model.Window) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Window, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Window, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Window]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Window](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
