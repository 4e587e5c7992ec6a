package tasks

import (
	"context"
	"errors"
	"fmt"
	"slotlink/config"
	"slotlink/infras/otel"
	"slotlink/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTaskTimeout = 30 * time.Second

var ErrUnknownKind = errors.New("no handler registered for task kind")

type Handler func(ctx context.Context, task Task) error

// Runner executes tasks by kind. Both the local dispatcher and the kafka worker go through it.
type Runner interface {
	Register(kind Kind, handler Handler)
	Run(ctx context.Context, task Task) error
}

type runnerImpl struct {
	mu       sync.RWMutex
	handlers map[Kind]Handler
	timeout  time.Duration
	otel     otel.Otel
}

func NewRunner(cfg *config.Config, otel otel.Otel) Runner {
	timeout := time.Duration(cfg.Dispatcher.TaskTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}

	return &runnerImpl{
		handlers: map[Kind]Handler{},
		timeout:  timeout,
		otel:     otel,
	}
}

func (r *runnerImpl) Register(kind Kind, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[kind] = handler
}

func (r *runnerImpl) Run(ctx context.Context, task Task) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelTaskScopeName, constant.OtelTaskScopeName+"."+string(task.Kind))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{"task.id": task.ID, "booking.id": task.BookingID})

	r.mu.RLock()
	handler, ok := r.handlers[task.Kind]
	r.mu.RUnlock()

	if !ok {
		r.count(ctx, task.Kind, constant.MetricOutcomeSkipped)

		return fmt.Errorf("%w: %s", ErrUnknownKind, task.Kind)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()

	if err = handler(ctx, task); err != nil {
		r.count(ctx, task.Kind, constant.MetricOutcomeFailed)

		log.Error().Err(err).Str("task", task.ID).Str("kind", string(task.Kind)).Str("booking", task.BookingID).Msg("task failed")

		return fmt.Errorf("task %s (%s) failed: %w", task.ID, task.Kind, err)
	}

	r.count(ctx, task.Kind, constant.MetricOutcomeSuccess)

	log.Info().Str("task", task.ID).Str("kind", string(task.Kind)).Dur("took", time.Since(start)).Msg("task done")

	return nil
}

func (r *runnerImpl) count(ctx context.Context, kind Kind, result string) {
	r.otel.Count(context.WithoutCancel(ctx), constant.MetricSideEffectTasks, map[string]string{
		constant.MetricAttributeKind:   string(kind),
		constant.MetricAttributeResult: result,
	})
}
