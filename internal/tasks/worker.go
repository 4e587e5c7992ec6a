package tasks

import (
	"context"
	"fmt"
	"slotlink/config"
	"slotlink/infras/kafka"

	"github.com/rs/zerolog/log"
)

// Worker consumes side effect tasks published by the kafka dispatcher and runs them.
type Worker struct {
	cfg    *config.Config
	client kafka.Client
	runner Runner
}

func NewWorker(cfg *config.Config, client kafka.Client, runner Runner) *Worker {
	return &Worker{
		cfg:    cfg,
		client: client,
		runner: runner,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	topic := w.cfg.Kafka.Topics.SideEffects

	log.Info().Str("topic", topic).Str("group", w.cfg.Kafka.ConsumerGroup).Msg("side effect worker started")

	if err := w.client.Consume(ctx, w.cfg.Kafka.ConsumerGroup, topic, ConsumeHandler(w.runner)); err != nil {
		return fmt.Errorf("failed to consume side effects: %w", err)
	}

	return nil
}

func (w *Worker) Close() error {
	return w.client.Close() //nolint:wrapcheck
}
