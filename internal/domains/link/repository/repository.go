package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slotlink/infras/otel"
	"slotlink/infras/postgres"
	"slotlink/internal/domains/link/model"
	"slotlink/shared"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	"slotlink/shared/failure"
	"slotlink/shared/logger"
	gRepo "slotlink/shared/repository"
	"slotlink/shared/timezone"
)

type Link interface {
	Insert(ctx context.Context, model model.Link) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Link, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Link, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// GetBySlug returns the oldest link with slug, or a zero link.
	GetBySlug(ctx context.Context, slug string) (model.Link, error)
	// TryIncrementUsage consumes one use if the cap allows it and returns the new count.
	TryIncrementUsage(ctx context.Context, id string) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Link]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Link {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Link](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Insert(ctx context.Context, link model.Link) error {
	err := r.Repository.Insert(ctx, link)
	if shared.IsUniqueViolation(err, model.ConstraintOwnerSlug) {
		return failure.Conflict(fmt.Sprintf("link with slug %q already exists", link.Slug)) // nolint:wrapcheck
	}

	return err //nolint:wrapcheck
}

func (r *repositoryImpl) Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error {
	err := r.Repository.Update(ctx, req, filter)
	if shared.IsUniqueViolation(err, model.ConstraintOwnerSlug) {
		return failure.Conflict(fmt.Sprintf("link with slug %q already exists", req[model.FieldSlug])) // nolint:wrapcheck
	}

	return err //nolint:wrapcheck
}

func (r *repositoryImpl) GetBySlug(ctx context.Context, slug string) (link model.Link, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".link.GetBySlug")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{Page: 1, Limit: 1, SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	links, err := r.GetAll(ctx, params, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		return link, err //nolint:wrapcheck
	}

	if len(links) == 0 {
		return link, nil
	}

	return links[0], nil
}

func (r *repositoryImpl) TryIncrementUsage(ctx context.Context, id string) (uses int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".link.TryIncrementUsage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := fmt.Sprintf(
		"UPDATE %s SET uses = uses + 1, modified_at = $2 WHERE id = $1 AND (max_uses IS NULL OR uses < max_uses) RETURNING uses",
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = r.db.Writer(ctx).GetContext(ctx, &uses, query, id, timezone.Now().UTC())
	if err == nil {
		return uses, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to increment link usage: %w", err)
	}

	exist, err := r.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	if !exist {
		return 0, failure.NotFound("link not found") // nolint:wrapcheck
	}

	return 0, failure.UsageExceeded("link has reached its maximum number of uses") // nolint:wrapcheck
}
