package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"slotlink/config"
	otelMocks "slotlink/infras/otel/mocks"
	"slotlink/shared/cache"
	cacheMocks "slotlink/shared/cache/mocks"
	"slotlink/shared/constant"
	"slotlink/transport/http/middleware"
)

func TestRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	counts := map[string]int{}

	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, key string, value any) error {
		count, ok := counts[key]
		if !ok {
			return cache.Nil
		}

		*value.(*int) = count

		return nil
	}).AnyTimes()
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).DoAndReturn(func(_ context.Context, key string, value any, _ int) error {
		counts[key] = value.(int)

		return nil
	}).AnyTimes()

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	limiter := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, redisCache).RateLimit()
	handler := limiter(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/public/links/intro-call", nil)
		req.Header.Set(constant.RequestHeaderForwardedFor, ip+", 10.0.0.1")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		return rec
	}

	first := send("203.0.113.7")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get(constant.RequestHeaderRateLimitRemaining))

	assert.Equal(t, http.StatusOK, send("203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, send("198.51.100.4").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	limiter := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, redisCache).RateLimit()
	handler := limiter(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	for range 5 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
