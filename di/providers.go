package di

import (
	"slotlink/config"
	"slotlink/infras/otel"
	enrichmentService "slotlink/internal/domains/enrichment/service"
	notificationService "slotlink/internal/domains/notification/service"
	"slotlink/internal/tasks"
)

// provideRunner registers every side effect handler. The local dispatcher and the kafka worker share it.
func provideRunner(
	cfg *config.Config,
	otel otel.Otel,
	notifier notificationService.Notifier,
	enricher enrichmentService.Enricher,
) tasks.Runner {
	runner := tasks.NewRunner(cfg, otel)

	runner.Register(tasks.KindNotifyOwner, notifier.HandleTask)
	runner.Register(tasks.KindEnrichProfile, enricher.HandleTask)

	return runner
}
