package tasks_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"slotlink/config"
	"slotlink/infras/kafka"
	kafkaMocks "slotlink/infras/kafka/mocks"
	otelMocks "slotlink/infras/otel/mocks"
	"slotlink/internal/tasks"
	"slotlink/shared/constant"
)

func TestKafkaDispatcher_Enqueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	o := otelMocks.NewOtel()

	dispatcher := tasks.NewKafkaDispatcher(client, "side-effects", 4, time.Second, o)
	sent := tasks.NotifyOwner("booking-1", time.Now())
	failed := tasks.NotifyOwner("booking-2", time.Now())

	gomock.InOrder(
		client.EXPECT().SendMessages(gomock.Any(), "side-effects", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			require.Len(t, messages, 1)
			assert.Equal(t, "booking-1", messages[0].Key)
			assert.Equal(t, sent, messages[0].Value)

			return nil
		}),
		client.EXPECT().SendMessages(gomock.Any(), "side-effects", gomock.Any()).Return(errors.New("broker unavailable")),
	)

	dispatcher.Enqueue(context.Background(), sent)
	dispatcher.Enqueue(context.Background(), failed)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, dispatcher.Close(ctx))
	assert.Equal(t, 1, o.Counted(constant.MetricSideEffectTasks, string(tasks.KindNotifyOwner), constant.MetricOutcomeDropped))

	dispatcher.Enqueue(context.Background(), sent)
	assert.Equal(t, 2, o.Counted(constant.MetricSideEffectTasks, string(tasks.KindNotifyOwner), constant.MetricOutcomeDropped))
}

func TestKafkaDispatcher_SlowBrokerDoesNotBlockEnqueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	o := otelMocks.NewOtel()

	publishTimeout := 300 * time.Millisecond
	dispatcher := tasks.NewKafkaDispatcher(client, "side-effects", 1, publishTimeout, o)

	started := make(chan struct{})

	gomock.InOrder(
		client.EXPECT().SendMessages(gomock.Any(), "side-effects", gomock.Any()).DoAndReturn(func(ctx context.Context, _ string, _ ...kafka.Message) error {
			close(started)

			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)

			<-ctx.Done()

			return ctx.Err()
		}),
		client.EXPECT().SendMessages(gomock.Any(), "side-effects", gomock.Any()).Return(nil),
	)

	begin := time.Now()

	dispatcher.Enqueue(context.Background(), tasks.NotifyOwner("booking-1", time.Now()))
	<-started

	// The publisher is stuck on the first task, so the queue takes one more and drops the next.
	dispatcher.Enqueue(context.Background(), tasks.NotifyOwner("booking-2", time.Now()))
	dispatcher.Enqueue(context.Background(), tasks.NotifyOwner("booking-3", time.Now()))

	assert.Less(t, time.Since(begin), publishTimeout)
	assert.Equal(t, 1, o.Counted(constant.MetricSideEffectTasks, string(tasks.KindNotifyOwner), constant.MetricOutcomeDropped))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, dispatcher.Close(ctx))
	assert.Equal(t, 2, o.Counted(constant.MetricSideEffectTasks, string(tasks.KindNotifyOwner), constant.MetricOutcomeDropped))
}

func TestConsumeHandler(t *testing.T) {
	runner, _ := newRunner(5)

	var got tasks.Task

	runner.Register(tasks.KindEnrichProfile, func(_ context.Context, task tasks.Task) error {
		got = task

		return errors.New("upstream down")
	})

	handler := tasks.ConsumeHandler(runner)

	task := tasks.EnrichProfile("booking-1", "ref", []tasks.QA{{Question: "q", Answer: "a"}}, time.Now())
	value, err := json.Marshal(task)
	require.NoError(t, err)

	assert.NoError(t, handler(context.Background(), kafkaGo.Message{Key: []byte("booking-1"), Value: value}))
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "ref", got.ProfileRef)

	assert.NoError(t, handler(context.Background(), kafkaGo.Message{Value: []byte("{not json")}))
}

func TestNewDispatcher_FallsBackToLocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Dispatcher.Driver = constant.DispatcherDriverKafka
	cfg.Dispatcher.Workers = 1
	cfg.Dispatcher.QueueSize = 1

	runner, o := newRunner(5)

	dispatcher := tasks.NewDispatcher(cfg, runner, client, o)

	// No brokers configured: nothing may reach the kafka client.
	runner.Register(tasks.KindNotifyOwner, func(context.Context, tasks.Task) error { return nil })
	dispatcher.Enqueue(context.Background(), tasks.NotifyOwner("booking-1", time.Now()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, dispatcher.Close(ctx))
	assert.Equal(t, 1, o.Counted(constant.MetricSideEffectTasks, string(tasks.KindNotifyOwner), constant.MetricOutcomeSuccess))
}
