package service

import (
	"context"
	"errors"
	"fmt"
	"slotlink/config"
	"slotlink/infras/otel"
	"slotlink/internal/domains/link/model"
	"slotlink/internal/domains/link/model/dto"
	"slotlink/internal/domains/link/repository"
	"slotlink/shared"
	"slotlink/shared/cache"
	"slotlink/shared/clock"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	"slotlink/shared/failure"
	"slotlink/shared/validator"

	"github.com/rs/zerolog/log"
)

var sortableFields = []string{constant.FieldCreatedAt, model.FieldSlug, model.FieldUses, model.FieldExpirationDate}

type Link interface {
	Create(ctx context.Context, req dto.CreateLinkRequest) (dto.LinkResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetLinksResponse, error)
	Get(ctx context.Context, id string) (dto.LinkResponse, error)
	Update(ctx context.Context, req dto.UpdateLinkRequest, id string) error
	Delete(ctx context.Context, id string) error
	IncrementUsage(ctx context.Context, id string) (dto.UsageResponse, error)
}

type serviceImpl struct {
	repo  repository.Link
	cfg   *config.Config
	cache cache.RedisCache
	clock clock.Clock
	otel  otel.Otel
}

func New(repo repository.Link, cfg *config.Config, cache cache.RedisCache, clock clock.Clock, otel otel.Otel) Link {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		clock: clock,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLinkRequest) (res dto.LinkResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)
	ownerEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	req.Normalize()

	if err = validator.ValidateVar(req.Slug, "slug"); err != nil {
		return res, err //nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByOwnerAndID(owner, req.Slug, model.FieldOwnerID, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check slug availability")

		return res, fmt.Errorf("failed to check slug availability: %w", err)
	}

	if exist {
		return res, failure.Conflict(fmt.Sprintf("link with slug %q already exists", req.Slug)) // nolint:wrapcheck
	}

	link, err := req.ToModel(owner, ownerEmail, s.cfg.App.Booking.DefaultMaxDaysInAdvance, s.clock.Now())
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, link); err != nil {
		if errors.Is(err, failure.ErrConflict) {
			return res, err //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create link")

		return res, fmt.Errorf("failed to create link: %w", err)
	}

	go s.invalidateLists(context.WithoutCancel(ctx))

	res.FromModel(link)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetLinksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(owner, model.FieldOwnerID, model.TableName)

	req.Restrict(sortableFields...)

	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheKeyLinks, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for links")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get links")

		return res, fmt.Errorf("failed to get links: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save links to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheKeyLinkCount, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count links")

		return res, fmt.Errorf("failed to count links: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save link count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.LinkResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cacheKey := shared.BuildCacheKey(constant.CacheKeyLink, owner, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for link")

		return res, nil
	}

	link, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return res, err
	}

	res.FromModel(link)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save link to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateLinkRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return err
	}

	req.Normalize()

	if req.Slug != "" && req.Slug != current.Slug {
		if err = validator.ValidateVar(req.Slug, "slug"); err != nil {
			return err //nolint:wrapcheck
		}

		taken, err := s.repo.Exist(ctx, shared.FilterByOwnerAndID(owner, req.Slug, model.FieldOwnerID, model.FieldSlug, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check slug availability")

			return fmt.Errorf("failed to check slug availability: %w", err)
		}

		if taken {
			return failure.Conflict(fmt.Sprintf("link with slug %q already exists", req.Slug)) // nolint:wrapcheck
		}
	}

	if req.MaxUses != nil && *req.MaxUses < current.Uses {
		return failure.Validation(fmt.Sprintf("max_uses cannot be lower than current uses (%d)", current.Uses)) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, owner)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByOwnerAndID(owner, id, model.FieldOwnerID, model.FieldID, model.TableName)); err != nil {
		if errors.Is(err, failure.ErrConflict) {
			return err //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update link")

		return fmt.Errorf("failed to update link: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), owner, id, current.Slug, req.Slug)

	return nil
}

// Delete succeeds when the link is already gone. Bookings made through the link are kept.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByOwnerAndID(owner, id, model.FieldOwnerID, model.FieldID, model.TableName)

	link, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get link")

		return fmt.Errorf("failed to get link: %w", err)
	}

	if link.ID == constant.Empty {
		log.Debug().Str("id", id).Msg("link already deleted")

		return nil
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete link")

		return fmt.Errorf("failed to delete link: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), owner, id, link.Slug)

	return nil
}

func (s *serviceImpl) IncrementUsage(ctx context.Context, id string) (res dto.UsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IncrementUsage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	link, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return res, err
	}

	uses, err := s.repo.TryIncrementUsage(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	go s.invalidate(context.WithoutCancel(ctx), owner, id, link.Slug)

	return dto.UsageResponse{ID: id, Uses: uses}, nil
}

func (s *serviceImpl) getOwned(ctx context.Context, owner, id string) (model.Link, error) {
	link, err := s.repo.Get(ctx, shared.FilterByOwnerAndID(owner, id, model.FieldOwnerID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get link")

		return link, fmt.Errorf("failed to get link: %w", err)
	}

	if link.ID == constant.Empty {
		return link, failure.NotFound("link not found") // nolint:wrapcheck
	}

	return link, nil
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyLinks)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyLinkCount)
}

func (s *serviceImpl) invalidate(ctx context.Context, owner, id string, slugs ...string) {
	shared.InvalidateLinkCaches(ctx, s.cache, owner, id, slugs...)
}
