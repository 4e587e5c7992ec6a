package tasks

import (
	"context"
	"fmt"
	"slotlink/infras/otel"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

const (
	defaultWorkers   = 4
	defaultQueueSize = 256
)

type localDispatcher struct {
	runner Runner
	otel   otel.Otel
	queue  chan Task
	pool   conc.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewLocalDispatcher runs tasks on a fixed pool of in-process workers fed by a bounded queue.
func NewLocalDispatcher(workers, queueSize int, runner Runner, otel otel.Otel) Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}

	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	d := &localDispatcher{
		runner: runner,
		otel:   otel,
		queue:  make(chan Task, queueSize),
	}

	for range workers {
		d.pool.Go(d.work)
	}

	return d
}

func (d *localDispatcher) Enqueue(ctx context.Context, task Task) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Warn().Str("task", task.ID).Str("kind", string(task.Kind)).Msg("dispatcher closed, task dropped")
		countDropped(ctx, d.otel, task.Kind)

		return
	}

	select {
	case d.queue <- task:
	default:
		log.Warn().Str("task", task.ID).Str("kind", string(task.Kind)).Str("booking", task.BookingID).Msg("task queue full, task dropped")
		countDropped(ctx, d.otel, task.Kind)
	}
}

func (d *localDispatcher) work() {
	for task := range d.queue {
		d.execute(task)
	}
}

func (d *localDispatcher) execute(task Task) {
	var catcher panics.Catcher

	catcher.Try(func() {
		// Errors are logged and counted by the runner.
		_ = d.runner.Run(context.Background(), task)
	})

	if recovered := catcher.Recovered(); recovered != nil {
		log.Error().
			Str("task", task.ID).
			Str("kind", string(task.Kind)).
			Str("panic", fmt.Sprint(recovered.Value)).
			Bytes("stack", recovered.Stack).
			Msg("task panicked")
	}
}

// Close stops accepting tasks and waits for queued ones until ctx is done.
func (d *localDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})

	go func() {
		d.pool.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		log.Warn().Int("pending", len(d.queue)).Msg("dispatcher drain interrupted")

		return fmt.Errorf("failed to drain task queue: %w", ctx.Err())
	}
}
