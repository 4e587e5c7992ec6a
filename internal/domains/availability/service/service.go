package service

import (
	"context"
	"fmt"
	"slotlink/config"
	"slotlink/infras/otel"
	"slotlink/internal/domains/availability/model"
	"slotlink/internal/domains/availability/model/dto"
	"slotlink/internal/domains/availability/repository"
	"slotlink/shared"
	"slotlink/shared/cache"
	"slotlink/shared/clock"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	"slotlink/shared/failure"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	Add(ctx context.Context, req dto.AddWindowsRequest) (dto.GetWindowsResponse, error)
	List(ctx context.Context) (dto.GetWindowsResponse, error)
	Remove(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Availability
	cfg   *config.Config
	cache cache.RedisCache
	clock clock.Clock
	otel  otel.Otel
}

func New(repo repository.Availability, cfg *config.Config, cache cache.RedisCache, clock clock.Clock, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		clock: clock,
		otel:  otel,
	}
}

// Add stores every window or none. Overlapping windows are kept as given.
func (s *serviceImpl) Add(ctx context.Context, req dto.AddWindowsRequest) (res dto.GetWindowsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()

	if len(req.Windows) == 0 {
		return res, failure.Validation("at least one window is required") // nolint:wrapcheck
	}

	windows := make([]model.Window, 0, len(req.Windows))

	for i, window := range req.Windows {
		if window.StartTime >= window.EndTime {
			return res, failure.Validation(fmt.Sprintf("windows[%d]: start_time must be before end_time", i)) // nolint:wrapcheck
		}

		windows = append(windows, window.ToModel(owner, now))
	}

	if err = s.repo.InsertBulk(ctx, windows); err != nil {
		log.Error().Err(err).Msg("failed to add availability windows")

		return res, fmt.Errorf("failed to add availability windows: %w", err)
	}

	go s.invalidatePages(context.WithoutCancel(ctx))

	res.FromModels(windows)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context) (res dto.GetWindowsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	windows, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(owner, model.FieldOwnerID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to list availability windows")

		return res, fmt.Errorf("failed to list availability windows: %w", err)
	}

	res.FromModels(windows)

	return res, nil
}

func (s *serviceImpl) Remove(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByOwnerAndID(owner, id, model.FieldOwnerID, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if availability window exists")

		return fmt.Errorf("failed to check if availability window exists: %w", err)
	}

	if !exist {
		return failure.NotFound("availability window not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to remove availability window")

		return fmt.Errorf("failed to remove availability window: %w", err)
	}

	go s.invalidatePages(context.WithoutCancel(ctx))

	return nil
}

// Public pages embed the owner's windows; they are keyed by slug so the whole namespace goes.
func (s *serviceImpl) invalidatePages(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyPublicPage)
}
