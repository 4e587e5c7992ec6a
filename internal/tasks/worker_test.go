package tasks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"slotlink/config"
	"slotlink/infras/kafka"
	kafkaMocks "slotlink/infras/kafka/mocks"
	"slotlink/internal/tasks"
)

func TestWorker_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	runner, _ := newRunner(5)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "slotlink-worker"
	cfg.Kafka.Topics.SideEffects = "side-effects"

	task := tasks.NotifyOwner("booking-1", time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))

	var ran []string

	runner.Register(tasks.KindNotifyOwner, func(_ context.Context, got tasks.Task) error {
		ran = append(ran, got.BookingID)

		return nil
	})

	client.EXPECT().Consume(gomock.Any(), "slotlink-worker", "side-effects", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string, handler kafka.Handler) error {
			message := kafka.Message{Key: task.BookingID, Value: task}

			kafkaMessage, err := message.ToKafkaMessage()
			require.NoError(t, err)

			return handler(ctx, kafkaMessage)
		})

	worker := tasks.NewWorker(cfg, client, runner)

	require.NoError(t, worker.Run(context.Background()))
	assert.Equal(t, []string{"booking-1"}, ran)
}

func TestWorker_RunConsumeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	runner, _ := newRunner(5)

	client.EXPECT().Consume(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(kafka.ErrNoBrokers)
	client.EXPECT().Close().Return(nil)

	worker := tasks.NewWorker(&config.Config{}, client, runner)

	err := worker.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, kafka.ErrNoBrokers))
	assert.NoError(t, worker.Close())
}
