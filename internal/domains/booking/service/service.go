package service

import (
	"context"
	"errors"
	"fmt"
	"slotlink/config"
	"slotlink/infras/otel"
	"slotlink/infras/postgres"
	availabilityModel "slotlink/internal/domains/availability/model"
	availabilityDto "slotlink/internal/domains/availability/model/dto"
	availabilityRepo "slotlink/internal/domains/availability/repository"
	"slotlink/internal/domains/booking/model"
	"slotlink/internal/domains/booking/model/dto"
	"slotlink/internal/domains/booking/repository"
	commitmentModel "slotlink/internal/domains/commitment/model"
	commitmentService "slotlink/internal/domains/commitment/service"
	linkModel "slotlink/internal/domains/link/model"
	linkRepo "slotlink/internal/domains/link/repository"
	"slotlink/internal/tasks"
	"slotlink/shared"
	"slotlink/shared/cache"
	"slotlink/shared/clock"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	"slotlink/shared/failure"
	"slotlink/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const defaultBookTimeout = 10 * time.Second

// Resolution states, emitted as span events.
const (
	stateValidating        = "validating"
	stateCheckingConflicts = "checking_conflicts"
	stateCommitting        = "committing"
	stateDispatching       = "dispatching"
	stateDone              = "done"
	stateRejected          = "rejected"
)

var sortableFields = []string{model.FieldScheduledFor, constant.FieldCreatedAt}

type Booking interface {
	// Book resolves a visitor request against the link's rules and the owner's commitments.
	Book(ctx context.Context, req dto.BookRequest) (dto.BookResponse, error)
	PublicPage(ctx context.Context, slug string) (dto.PublicPageResponse, error)
	ListUpcoming(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetDetail(ctx context.Context, id string) (dto.BookingDetailResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	linkRepo   linkRepo.Link
	windows    availabilityRepo.Availability
	ledger     commitmentService.Ledger
	transactor postgres.Transactor
	dispatcher tasks.Dispatcher
	cfg        *config.Config
	cache      cache.RedisCache
	clock      clock.Clock
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	linkRepo linkRepo.Link,
	windows availabilityRepo.Availability,
	ledger commitmentService.Ledger,
	transactor postgres.Transactor,
	dispatcher tasks.Dispatcher,
	cfg *config.Config,
	cache cache.RedisCache,
	clock clock.Clock,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		linkRepo:   linkRepo,
		windows:    windows,
		ledger:     ledger,
		transactor: transactor,
		dispatcher: dispatcher,
		cfg:        cfg,
		cache:      cache,
		clock:      clock,
		otel:       otel,
	}
}

func (s *serviceImpl) Book(ctx context.Context, req dto.BookRequest) (res dto.BookResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Book")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.countAttempt(ctx, err) }()

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	logger := log.With().Str("link", req.LinkRef).Logger()

	transition := func(state string) {
		scope.AddEvent(state)
		logger.Debug().Str("state", state).Msg("booking state changed")
	}

	defer func() {
		if err != nil {
			transition(stateRejected)
		}
	}()

	transition(stateValidating)

	req.Normalize()

	start, err := timezone.ParseInstant(req.Start)
	if err != nil {
		return res, failure.Validation("start must be an ISO 8601 timestamp") // nolint:wrapcheck
	}

	link, err := s.resolveLink(ctx, req.LinkRef)
	if err != nil {
		return res, err
	}

	now := s.clock.Now()

	if err = checkBookable(link, now); err != nil {
		return res, err
	}

	if latest := link.LatestStart(now); start.After(latest) {
		return res, failure.TooFarInAdvance(fmt.Sprintf( // nolint:wrapcheck
			"bookings can be made at most %d days in advance", link.MaxDaysInAdvance))
	}

	booking := req.ToModel(link, start, now)

	transition(stateCheckingConflicts)

	if err = s.checkConflicts(ctx, booking); err != nil {
		return res, err
	}

	transition(stateCommitting)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Insert(ctx, booking); err != nil {
			return err //nolint:wrapcheck
		}

		if _, err := s.linkRepo.TryIncrementUsage(ctx, link.ID); err != nil {
			return err //nolint:wrapcheck
		}

		calendar, err := s.ledger.EnsureSelfCalendar(ctx, booking.OwnerID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		return s.ledger.InsertInternal(ctx, booking.OwnerID, calendar.ID, booking.ScheduledFor, booking.EndsAt(), booking.ID) //nolint:wrapcheck
	})
	if err != nil {
		if failure.GetReason(err) != constant.Empty {
			return res, err //nolint:wrapcheck
		}

		logger.Error().Err(err).Msg("failed to commit booking")

		return res, fmt.Errorf("failed to commit booking: %w", err)
	}

	transition(stateDispatching)

	s.dispatch(context.WithoutCancel(ctx), booking, now)

	go shared.InvalidateLinkCaches(context.WithoutCancel(ctx), s.cache, link.OwnerID, link.ID, link.Slug)

	transition(stateDone)
	logger.Info().Str("booking", booking.ID).Time("start", booking.ScheduledFor).Msg("booking confirmed")

	return dto.BookResponse{BookingID: booking.ID, Success: true}, nil
}

// PublicPage is what a visitor sees before booking. An expired or exhausted link is reported as such.
func (s *serviceImpl) PublicPage(ctx context.Context, slug string) (res dto.PublicPageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PublicPage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(constant.CacheKeyPublicPage, slug)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for public page")

		if res.Link.IsExpired(s.clock.Now()) {
			go s.evictPage(context.WithoutCancel(ctx), cacheKey)

			return dto.PublicPageResponse{}, failure.ExpiredLink("this booking link has expired") // nolint:wrapcheck
		}

		return res, nil
	}

	link, err := s.linkRepo.GetBySlug(ctx, slug)
	if err != nil {
		log.Error().Err(err).Msg("failed to get link")

		return res, fmt.Errorf("failed to get link: %w", err)
	}

	if link.ID == constant.Empty {
		return res, failure.NotFound("link not found") // nolint:wrapcheck
	}

	now := s.clock.Now()

	if err = checkBookable(link, now); err != nil {
		return res, err
	}

	windows, err := s.windows.GetAll(
		ctx,
		gDto.QueryParams{SortBy: availabilityModel.FieldStartTime, SortDir: gDto.SortDirAsc},
		shared.FilterByID(link.OwnerID, availabilityModel.FieldOwnerID, availabilityModel.TableName),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability windows")

		return res, fmt.Errorf("failed to get availability windows: %w", err)
	}

	to := link.LatestStart(now)

	busy, err := s.ledger.BusyBetween(ctx, link.OwnerID, now, to)
	if err != nil {
		return res, fmt.Errorf("failed to get busy intervals: %w", err)
	}

	res.FromModels(link, busy)
	res.Availability = availabilityDto.GroupByWeekday(windows)
	res.Timezone = timezone.GetLocation().String()
	res.From = now.UTC()
	res.To = to.UTC()

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save public page to cache")
		}
	}()

	return res, nil
}

// ListUpcoming returns the owner's bookings from the start of today, earliest first unless asked otherwise.
func (s *serviceImpl) ListUpcoming(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListUpcoming")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if params.SortBy == constant.Empty {
		params.SortBy = model.FieldScheduledFor
		params.SortDir = gDto.SortDirAsc
	}

	params.Restrict(sortableFields...)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldOwnerID, Value: owner, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{
				Field:    model.FieldScheduledFor,
				Value:    timezone.DateOf(s.clock.Now()).UTC(),
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
		},
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) GetDetail(ctx context.Context, id string) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDetail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	detail, err := s.repo.GetDetail(ctx, shared.FilterByOwnerAndID(owner, id, model.FieldOwnerID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(detail)

	return res, nil
}

// resolveLink accepts a link id or a slug. A slug shaped like a uuid still resolves.
func (s *serviceImpl) resolveLink(ctx context.Context, ref string) (link linkModel.Link, err error) {
	if uuid.Validate(ref) == nil {
		link, err = s.linkRepo.Get(ctx, shared.FilterByID(ref, linkModel.FieldID, linkModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get link")

			return link, fmt.Errorf("failed to get link: %w", err)
		}

		if link.ID != constant.Empty {
			return link, nil
		}
	}

	link, err = s.linkRepo.GetBySlug(ctx, ref)
	if err != nil {
		log.Error().Err(err).Msg("failed to get link")

		return link, fmt.Errorf("failed to get link: %w", err)
	}

	if link.ID == constant.Empty {
		return link, failure.NotFound("link not found") // nolint:wrapcheck
	}

	return link, nil
}

func (s *serviceImpl) checkConflicts(ctx context.Context, booking model.Booking) error {
	taken, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldOwnerID, Value: booking.OwnerID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldScheduledFor, Value: booking.ScheduledFor, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking conflicts")

		return fmt.Errorf("failed to check booking conflicts: %w", err)
	}

	if taken {
		return failure.SlotTaken("this time slot is no longer available") // nolint:wrapcheck
	}

	if !s.cfg.App.Booking.OverlapCheck {
		return nil
	}

	start, end := booking.ScheduledFor, booking.EndsAt()

	busy, err := s.ledger.BusyBetween(ctx, booking.OwnerID, start, end)
	if err != nil {
		return fmt.Errorf("failed to check busy intervals: %w", err)
	}

	if lo.SomeBy(busy, func(interval commitmentModel.BusyInterval) bool { return interval.Blocks(start, end) }) {
		return failure.SlotTaken("the owner is busy at this time") // nolint:wrapcheck
	}

	return nil
}

// dispatch never fails the booking: a dispatcher that cannot take a task drops it.
func (s *serviceImpl) dispatch(ctx context.Context, booking model.Booking, now time.Time) {
	s.dispatcher.Enqueue(ctx, tasks.NotifyOwner(booking.ID, now))

	if booking.ProfileRef == nil {
		return
	}

	answers := lo.Map(booking.Answers, func(answer model.Answer, _ int) tasks.QA {
		return tasks.QA{Question: answer.Question, Answer: answer.Answer}
	})

	s.dispatcher.Enqueue(ctx, tasks.EnrichProfile(booking.ID, *booking.ProfileRef, answers, now))
}

func (s *serviceImpl) evictPage(ctx context.Context, cacheKey string) {
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to delete public page from cache")
	}
}

func (s *serviceImpl) countAttempt(ctx context.Context, err error) {
	outcome := constant.MetricOutcomeSuccess

	switch reason := failure.GetReason(err); {
	case err == nil:
	case reason != constant.Empty:
		outcome = reason
	case errors.Is(err, context.DeadlineExceeded):
		outcome = constant.MetricOutcomeTimeout
	default:
		outcome = constant.MetricOutcomeFailed
	}

	s.otel.Count(ctx, constant.MetricBookingAttempts, map[string]string{constant.MetricAttributeOutcome: outcome})
}

func (s *serviceImpl) timeout() time.Duration {
	if seconds := s.cfg.App.Booking.TimeoutSeconds; seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultBookTimeout
}

func checkBookable(link linkModel.Link, now time.Time) error {
	if link.IsExpired(now) {
		return failure.ExpiredLink("this booking link has expired") // nolint:wrapcheck
	}

	if !link.HasUsesLeft() {
		return failure.UsageExceeded("this booking link has reached its maximum number of uses") // nolint:wrapcheck
	}

	return nil
}
