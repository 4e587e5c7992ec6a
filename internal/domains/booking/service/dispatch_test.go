package service_test

import (
	"context"
	"slotlink/config"
	"slotlink/infras/kafka"
	kafkaMocks "slotlink/infras/kafka/mocks"
	"slotlink/internal/domains/booking/service"
	"slotlink/internal/tasks"
	"slotlink/shared"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	"slotlink/shared/failure"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBook_SlowBrokerDoesNotDelayResponse(t *testing.T) {
	f := newFixture(t)
	link := introCall()

	client := kafkaMocks.NewMockClient(gomock.NewController(t))
	release := make(chan struct{})

	client.EXPECT().SendMessages(gomock.Any(), "side-effects", gomock.Any()).DoAndReturn(func(ctx context.Context, _ string, _ ...kafka.Message) error {
		select {
		case <-release:
		case <-ctx.Done():
		}

		return nil
	}).Times(2)

	dispatcher := tasks.NewKafkaDispatcher(client, "side-effects", 8, 5*time.Second, f.otel)
	svc := service.New(f.repo, f.links, f.windows, f.ledger, f.tx, dispatcher, f.cfg, f.cache, f.clock, f.otel)

	f.links.EXPECT().GetBySlug(gomock.Any(), "intro-call").Return(link, nil)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.expectCommit(link, start)

	req := bookRequest()
	req.ProfileRef = strPtr("https://linkedin.com/in/ada")

	begin := time.Now()

	res, err := svc.Book(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Less(t, time.Since(begin), time.Second)

	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, dispatcher.Close(ctx))
	assert.Equal(t, 0, f.otel.Counted(constant.MetricSideEffectTasks, string(tasks.KindNotifyOwner), constant.MetricOutcomeDropped))
}

func TestBook_EvictsLinkCaches(t *testing.T) {
	f := newFixture(t)
	link := introCall()

	f.links.EXPECT().GetBySlug(gomock.Any(), "intro-call").Return(link, nil)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.expectCommit(link, start)

	_, err := f.svc.Book(context.Background(), bookRequest())
	require.NoError(t, err)

	expected := []string{
		shared.BuildCacheKey(constant.CacheKeyLink, link.OwnerID, link.ID),
		shared.BuildCacheKey(constant.CacheKeyPublicPage, link.Slug),
		constant.CacheKeyLinks + constant.Asterix,
		constant.CacheKeyLinkCount + constant.Asterix,
	}

	assert.Eventually(t, func() bool {
		return lo.Every(f.evictedKeys(), expected)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBook_Timeout(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) {
		cfg.App.Booking.TimeoutSeconds = 1
	})

	f.links.EXPECT().GetBySlug(gomock.Any(), "intro-call").Return(introCall(), nil)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ gDto.FilterGroup) (bool, error) {
		<-ctx.Done()

		return false, ctx.Err()
	})

	res, err := f.svc.Book(context.Background(), bookRequest())

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, res.Success)
	assert.Empty(t, failure.GetReason(err))
	assert.Empty(t, f.kinds())
	assert.Equal(t, 1, f.otel.Counted(constant.MetricBookingAttempts, constant.MetricOutcomeTimeout))
	assert.Equal(t, 1, f.otel.Traced(constant.OtelServiceScopeName+".Book"))
}
