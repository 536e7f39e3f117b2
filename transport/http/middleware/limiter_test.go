package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/otel/mocks"
	cacheMocks "resto/shared/cache/mocks"
	"resto/transport/http/middleware"
)

func TestSubmissionLimit(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		disabled      bool
		setup         func(c *cacheMocks.MockRedisCache)
		wantStatus    int
		wantRemaining string
	}{
		{
			name:   "first submission",
			method: http.MethodPost,
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Increment(gomock.Any(), "limiter:submission:203.0.113.7:curl", 600).Return(int64(1), nil)
			},
			wantStatus:    http.StatusOK,
			wantRemaining: "2",
		},
		{
			name:   "last allowed submission",
			method: http.MethodPost,
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Increment(gomock.Any(), gomock.Any(), 600).Return(int64(3), nil)
			},
			wantStatus:    http.StatusOK,
			wantRemaining: "0",
		},
		{
			name:   "over budget",
			method: http.MethodPost,
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Increment(gomock.Any(), gomock.Any(), 600).Return(int64(4), nil)
			},
			wantStatus:    http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:       "reads are not counted",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
		{
			name:       "disabled limiter",
			method:     http.MethodPost,
			disabled:   true,
			wantStatus: http.StatusOK,
		},
		{
			name:   "cache outage lets the request through",
			method: http.MethodPost,
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused"))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)

			if tt.setup != nil {
				tt.setup(redisCache)
			}

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = !tt.disabled
			cfg.App.RateLimiter.Submission.MaxRequests = 3
			cfg.App.RateLimiter.Submission.WindowSeconds = 600

			app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache)

			handler := app.SubmissionLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/v1/bookings", nil)
			req.RemoteAddr = "203.0.113.7:51234"
			req.Header.Set("User-Agent", "curl")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get("X-RateLimit-Remaining"))
		})
	}
}

func TestRateLimit_ForwardedClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Increment(gomock.Any(), "limiter:198.51.100.4:unknown", 60).Return(int64(1), nil)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 30
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache)

	handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/menu", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("X-RateLimit-Limit"))
}
