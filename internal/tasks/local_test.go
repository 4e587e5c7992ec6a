package tasks_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotlink/internal/tasks"
	"slotlink/shared/constant"
)

func TestLocalDispatcher_RunsAndDrains(t *testing.T) {
	runner, o := newRunner(5)

	var ran atomic.Int32

	runner.Register(tasks.KindNotifyOwner, func(context.Context, tasks.Task) error {
		ran.Add(1)

		return nil
	})

	dispatcher := tasks.NewLocalDispatcher(2, 16, runner, o)

	for range 10 {
		dispatcher.Enqueue(context.Background(), tasks.NotifyOwner("booking-1", time.Now()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, dispatcher.Close(ctx))
	assert.Equal(t, int32(10), ran.Load())

	dispatcher.Enqueue(context.Background(), tasks.NotifyOwner("booking-2", time.Now()))
	assert.Equal(t, 1, o.Counted(constant.MetricSideEffectTasks, string(tasks.KindNotifyOwner), constant.MetricOutcomeDropped))
	assert.Equal(t, int32(10), ran.Load())
}

func TestLocalDispatcher_DropsWhenFull(t *testing.T) {
	runner, o := newRunner(5)

	started := make(chan struct{})
	release := make(chan struct{})

	var once sync.Once

	runner.Register(tasks.KindNotifyOwner, func(context.Context, tasks.Task) error {
		once.Do(func() { close(started) })
		<-release

		return nil
	})

	dispatcher := tasks.NewLocalDispatcher(1, 1, runner, o)

	dispatcher.Enqueue(context.Background(), tasks.NotifyOwner("booking-1", time.Now()))
	<-started

	// The worker is busy, so the queue holds exactly one more task.
	dispatcher.Enqueue(context.Background(), tasks.NotifyOwner("booking-2", time.Now()))
	dispatcher.Enqueue(context.Background(), tasks.NotifyOwner("booking-3", time.Now()))

	assert.Equal(t, 1, o.Counted(constant.MetricSideEffectTasks, string(tasks.KindNotifyOwner), constant.MetricOutcomeDropped))

	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, dispatcher.Close(ctx))
	assert.Equal(t, 2, o.Counted(constant.MetricSideEffectTasks, string(tasks.KindNotifyOwner), constant.MetricOutcomeSuccess))
}

func TestLocalDispatcher_RecoversPanics(t *testing.T) {
	runner, o := newRunner(5)

	var ran atomic.Int32

	runner.Register(tasks.KindEnrichProfile, func(context.Context, tasks.Task) error {
		panic("scraper exploded")
	})
	runner.Register(tasks.KindNotifyOwner, func(context.Context, tasks.Task) error {
		ran.Add(1)

		return nil
	})

	dispatcher := tasks.NewLocalDispatcher(1, 4, runner, o)

	dispatcher.Enqueue(context.Background(), tasks.EnrichProfile("booking-1", "ref", nil, time.Now()))
	dispatcher.Enqueue(context.Background(), tasks.NotifyOwner("booking-1", time.Now()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, dispatcher.Close(ctx))
	assert.Equal(t, int32(1), ran.Load())
}

func TestLocalDispatcher_CloseTimesOut(t *testing.T) {
	runner, o := newRunner(5)

	release := make(chan struct{})
	defer close(release)

	started := make(chan struct{})

	runner.Register(tasks.KindNotifyOwner, func(context.Context, tasks.Task) error {
		close(started)
		<-release

		return nil
	})

	dispatcher := tasks.NewLocalDispatcher(1, 1, runner, o)
	dispatcher.Enqueue(context.Background(), tasks.NotifyOwner("booking-1", time.Now()))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, dispatcher.Close(ctx), context.DeadlineExceeded)
}
