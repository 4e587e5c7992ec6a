package tasks

import (
	"context"
	"fmt"
	"slotlink/infras/kafka"
	"slotlink/infras/otel"
	"slotlink/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sourcegraph/conc"
)

const defaultPublishTimeout = 5 * time.Second

type kafkaDispatcher struct {
	client  kafka.Client
	topic   string
	timeout time.Duration
	otel    otel.Otel
	queue   chan Task
	pool    conc.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewKafkaDispatcher publishes tasks for cmd/worker from a background publisher fed by a bounded
// queue. Messages are keyed by booking id.
func NewKafkaDispatcher(client kafka.Client, topic string, queueSize int, publishTimeout time.Duration, otel otel.Otel) Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	if publishTimeout <= 0 {
		publishTimeout = defaultPublishTimeout
	}

	d := &kafkaDispatcher{
		client:  client,
		topic:   topic,
		timeout: publishTimeout,
		otel:    otel,
		queue:   make(chan Task, queueSize),
	}

	d.pool.Go(d.publishLoop)

	return d
}

func (d *kafkaDispatcher) Enqueue(ctx context.Context, task Task) {
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
		log.Warn().Str("task", task.ID).Str("kind", string(task.Kind)).Str("booking", task.BookingID).Msg("publish queue full, task dropped")
		countDropped(ctx, d.otel, task.Kind)
	}
}

func (d *kafkaDispatcher) publishLoop() {
	for task := range d.queue {
		d.publish(task)
	}
}

func (d *kafkaDispatcher) publish(task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	ctx, scope := d.otel.NewScope(ctx, constant.OtelTaskScopeName, constant.OtelTaskScopeName+".publish")
	defer scope.End()

	err := d.client.SendMessages(ctx, d.topic, kafka.Message{Key: task.BookingID, Value: task})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("task", task.ID).Str("kind", string(task.Kind)).Msg("failed to publish task, task dropped")
		countDropped(ctx, d.otel, task.Kind)
	}
}

// Close stops accepting tasks and waits for queued ones to be published until ctx is done. The
// kafka client itself is closed by its owner.
func (d *kafkaDispatcher) Close(ctx context.Context) error {
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
		log.Warn().Int("pending", len(d.queue)).Msg("publish queue drain interrupted")

		return fmt.Errorf("failed to drain publish queue: %w", ctx.Err())
	}
}

// ConsumeHandler adapts a runner to the kafka consumer loop. Undecodable and failed tasks are
// logged and committed so a poison message cannot stall the partition.
func ConsumeHandler(runner Runner) kafka.Handler {
	return func(ctx context.Context, message kafkaGo.Message) error {
		task, err := kafka.Decode[Task](message)
		if err != nil {
			log.Error().Err(err).Str("key", string(message.Key)).Msg("skipping undecodable task")

			return nil
		}

		if err := runner.Run(ctx, task); err != nil {
			log.Warn().Err(err).Str("task", task.ID).Msg("task not completed")
		}

		return nil
	}
}
