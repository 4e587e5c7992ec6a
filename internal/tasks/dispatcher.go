package tasks

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=./mocks/dispatcher_mock.go -package=mocks

import (
	"context"
	"slotlink/config"
	"slotlink/infras/kafka"
	"slotlink/infras/otel"
	"slotlink/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

// Dispatcher schedules side effects after a booking commits. Enqueue never blocks and never
// fails: a task that cannot be scheduled is logged and dropped.
type Dispatcher interface {
	Enqueue(ctx context.Context, task Task)
	Close(ctx context.Context) error
}

// NewDispatcher picks the implementation named by DISPATCHER_DRIVER, falling back to the local pool.
func NewDispatcher(cfg *config.Config, runner Runner, client kafka.Client, otel otel.Otel) Dispatcher {
	switch cfg.Dispatcher.Driver {
	case constant.DispatcherDriverKafka:
		if len(cfg.Kafka.Brokers) > 0 {
			log.Info().Str("topic", cfg.Kafka.Topics.SideEffects).Msg("side effects are published to kafka")

			return NewKafkaDispatcher(
				client,
				cfg.Kafka.Topics.SideEffects,
				cfg.Dispatcher.QueueSize,
				time.Duration(cfg.Dispatcher.PublishTimeoutSeconds)*time.Second,
				otel,
			)
		}

		log.Warn().Msg("kafka dispatcher requested without brokers, using local dispatcher")
	case constant.DispatcherDriverLocal, constant.Empty:
	default:
		log.Warn().Str("driver", cfg.Dispatcher.Driver).Msg("unknown dispatcher driver, using local dispatcher")
	}

	return NewLocalDispatcher(cfg.Dispatcher.Workers, cfg.Dispatcher.QueueSize, runner, otel)
}

func countDropped(ctx context.Context, o otel.Otel, kind Kind) {
	o.Count(context.WithoutCancel(ctx), constant.MetricSideEffectTasks, map[string]string{
		constant.MetricAttributeKind:   string(kind),
		constant.MetricAttributeResult: constant.MetricOutcomeDropped,
	})
}
