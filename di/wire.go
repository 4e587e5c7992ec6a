//go:build wireinject
// +build wireinject

package di

import (
	"slotlink/config"
	"slotlink/infras/enricher"
	"slotlink/infras/jwt"
	"slotlink/infras/kafka"
	"slotlink/infras/mailer"
	"slotlink/infras/otel"
	"slotlink/infras/postgres"
	"slotlink/infras/redis"
	"slotlink/infras/s3"
	"slotlink/internal/tasks"
	"slotlink/permissions"
	"slotlink/shared/cache"
	"slotlink/shared/clock"
	"slotlink/transport/http"
	"slotlink/transport/http/middleware"
	"slotlink/transport/http/router"

	availabilityRepository "slotlink/internal/domains/availability/repository"
	availabilityService "slotlink/internal/domains/availability/service"
	bookingRepository "slotlink/internal/domains/booking/repository"
	bookingService "slotlink/internal/domains/booking/service"
	commitmentRepository "slotlink/internal/domains/commitment/repository"
	commitmentService "slotlink/internal/domains/commitment/service"
	enrichmentService "slotlink/internal/domains/enrichment/service"
	linkRepository "slotlink/internal/domains/link/repository"
	linkService "slotlink/internal/domains/link/service"
	notificationService "slotlink/internal/domains/notification/service"

	availabilityHandler "slotlink/internal/handlers/availability"
	bookingHandler "slotlink/internal/handlers/booking"
	calendarHandler "slotlink/internal/handlers/calendar"
	linkHandler "slotlink/internal/handlers/link"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	mailer.New,
	s3.New,
	enricher.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
)

var linkDomain = wire.NewSet(
	linkRepository.New,
	linkService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
)

var commitmentDomain = wire.NewSet(
	commitmentRepository.NewCalendar,
	commitmentRepository.NewBusyInterval,
	commitmentService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var sideEffects = wire.NewSet(
	notificationService.New,
	enrichmentService.New,
	provideRunner,
)

var domains = wire.NewSet(
	linkDomain,
	availabilityDomain,
	commitmentDomain,
	bookingDomain,
	sideEffects,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	linkHandler.New,
	availabilityHandler.New,
	calendarHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		tasks.NewDispatcher,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *tasks.Worker {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		kafka.New,
		mailer.New,
		s3.New,
		enricher.New,
		clock.New,
		linkRepository.New,
		bookingRepository.New,
		sideEffects,
		tasks.NewWorker,
	)

	return &tasks.Worker{}
}
