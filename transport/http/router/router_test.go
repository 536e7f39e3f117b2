package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/otel/mocks"
	authMocks "resto/internal/domains/auth/mocks"
	bookingMocks "resto/internal/domains/booking/mocks"
	"resto/internal/domains/booking/model/dto"
	"resto/internal/handlers/booking"
	"resto/permissions"
	cacheMocks "resto/shared/cache/mocks"
	"resto/transport/http/middleware"
	"resto/transport/http/router"
)

func newMux(t *testing.T) (*chi.Mux, *bookingMocks.MockBookingService, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)
	svc := bookingMocks.NewMockBookingService(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.Submission.MaxRequests = 1
	cfg.App.RateLimiter.Submission.WindowSeconds = 600

	otel := mocks.NewOtel()

	r := router.New(
		router.DomainHandlers{Booking: booking.New(svc, otel)},
		middleware.NewAuthRoleMiddleware(authMocks.NewMockAuth(ctrl), otel, &permissions.PermissionData{}, cfg),
		middleware.NewAppMiddleware(otel, cfg, redisCache),
	)

	mux := chi.NewRouter()
	r.SetupRoutes(mux)

	return mux, svc, redisCache
}

func TestSetupRoutes_SubmissionBudget(t *testing.T) {
	availability := `{"hall_id":"7d9f3a52-1c4e-4b8a-9f0e-2a6c5d8e1b34","date":"2026-11-02","time_slots":["morning"]}`
	submission := `{"hall_id":"7d9f3a52-1c4e-4b8a-9f0e-2a6c5d8e1b34","customer_name":"Rahim","customer_phone":"01700000000","booking_date":"2026-11-02","time_slots":["morning"]}`

	t.Run("availability checks are not counted", func(t *testing.T) {
		mux, svc, _ := newMux(t)
		svc.EXPECT().CheckAvailability(gomock.Any(), gomock.Any()).
			Return(dto.AvailabilityResponse{Available: true, BookedSlots: []string{}}, nil).
			Times(3)

		for range 3 {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/bookings/availability", strings.NewReader(availability)))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Header().Get("X-RateLimit-Remaining"))
		}
	})

	t.Run("booking submissions are counted", func(t *testing.T) {
		mux, _, redisCache := newMux(t)
		redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), 600).Return(int64(2), nil)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(submission)))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("login attempts are counted", func(t *testing.T) {
		mux, _, redisCache := newMux(t)
		redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), 600).Return(int64(2), nil)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}
