package booking_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resto/infras/otel/mocks"
	bookingMocks "resto/internal/domains/booking/mocks"
	"resto/internal/domains/booking/model/dto"
	"resto/internal/handlers/booking"
	gDto "resto/shared/dto"
	"resto/shared/failure"
)

func newRouter(t *testing.T) (*chi.Mux, *bookingMocks.MockBookingService) {
	ctrl := gomock.NewController(t)
	svc := bookingMocks.NewMockBookingService(ctrl)

	handler := booking.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)
	handler.SubmissionRouter(router)
	router.Route("/admin", handler.AdminRouter)

	return router, svc
}

func serve(router http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_CheckAvailability(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(svc *bookingMocks.MockBookingService)
		wantStatus int
	}{
		{
			name: "available",
			body: `{"hall_id":"7d9f3a52-1c4e-4b8a-9f0e-2a6c5d8e1b34","date":"2026-11-02","time_slots":["morning"]}`,
			setup: func(svc *bookingMocks.MockBookingService) {
				svc.EXPECT().CheckAvailability(gomock.Any(), dto.CheckAvailabilityRequest{
					HallID: "7d9f3a52-1c4e-4b8a-9f0e-2a6c5d8e1b34", Date: "2026-11-02", TimeSlots: []string{"morning"},
				}).Return(dto.AvailabilityResponse{Available: true, BookedSlots: []string{}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "rejects unknown slot",
			body:       `{"hall_id":"7d9f3a52-1c4e-4b8a-9f0e-2a6c5d8e1b34","date":"2026-11-02","time_slots":["brunch"]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects malformed date",
			body:       `{"hall_id":"7d9f3a52-1c4e-4b8a-9f0e-2a6c5d8e1b34","date":"02/11/2026","time_slots":["morning"]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects malformed hall id",
			body:       `{"hall_id":"not-a-uuid","date":"2026-11-02","time_slots":["morning"]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects empty slot list",
			body:       `{"hall_id":"7d9f3a52-1c4e-4b8a-9f0e-2a6c5d8e1b34","date":"2026-11-02","time_slots":[]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown hall",
			body: `{"hall_id":"0b7e5c1a-8f42-4d6b-a3e9-5c2d7f1e9a60","date":"2026-11-02","time_slots":["night"]}`,
			setup: func(svc *bookingMocks.MockBookingService) {
				svc.EXPECT().CheckAvailability(gomock.Any(), gomock.Any()).Return(dto.AvailabilityResponse{}, failure.NotFound("party_hall"))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := serve(router, http.MethodPost, "/bookings/availability", strings.NewReader(tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_CreateBooking(t *testing.T) {
	valid := `{"hall_id":"7d9f3a52-1c4e-4b8a-9f0e-2a6c5d8e1b34","customer_name":"Rahim","customer_phone":"01700000000","booking_date":"2026-11-02","time_slots":["evening","night"]}`

	t.Run("created", func(t *testing.T) {
		router, svc := newRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{ID: "b-1", HallID: "hall-a", ApprovalStatus: "pending"}, nil)

		rec := serve(router, http.MethodPost, "/bookings", strings.NewReader(valid))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			Data dto.BookingResponse `json:"data"`
		}

		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "pending", body.Data.ApprovalStatus)
	})

	t.Run("slots taken", func(t *testing.T) {
		router, svc := newRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, failure.Conflict("requested time slots are no longer available"))

		rec := serve(router, http.MethodPost, "/bookings", strings.NewReader(valid))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed hall id", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := serve(router, http.MethodPost, "/bookings", strings.NewReader(strings.Replace(valid, "7d9f3a52-1c4e-4b8a-9f0e-2a6c5d8e1b34", "hall-a", 1)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing customer phone", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := serve(router, http.MethodPost, "/bookings", strings.NewReader(`{"hall_id":"7d9f3a52-1c4e-4b8a-9f0e-2a6c5d8e1b34","customer_name":"Rahim","booking_date":"2026-11-02","time_slots":["night"]}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_AdminCreateBooking(t *testing.T) {
	body := `{"hall_id":"0b7e5c1a-8f42-4d6b-a3e9-5c2d7f1e9a60","customer_name":"Walk-in","customer_phone":"01800000000","booking_date":"2026-12-20","time_slots":["morning"]}`

	t.Run("created through the back office", func(t *testing.T) {
		router, svc := newRouter(t)
		svc.EXPECT().Create(gomock.Any(), dto.CreateBookingRequest{
			HallID:        "0b7e5c1a-8f42-4d6b-a3e9-5c2d7f1e9a60",
			CustomerName:  "Walk-in",
			CustomerPhone: "01800000000",
			BookingDate:   "2026-12-20",
			TimeSlots:     []string{"morning"},
		}).Return(dto.BookingResponse{ID: "b-9", ApprovalStatus: "pending"}, nil)

		rec := serve(router, http.MethodPost, "/admin/bookings", strings.NewReader(body))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("slots taken", func(t *testing.T) {
		router, svc := newRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, failure.Conflict("requested time slots are no longer available"))

		rec := serve(router, http.MethodPost, "/admin/bookings/", strings.NewReader(body))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_Decisions(t *testing.T) {
	notes := "see you then"

	tests := []struct {
		name       string
		path       string
		body       io.Reader
		setup      func(svc *bookingMocks.MockBookingService)
		wantStatus int
	}{
		{
			name: "approve without body",
			path: "/admin/bookings/b-1/approve",
			setup: func(svc *bookingMocks.MockBookingService) {
				svc.EXPECT().Approve(gomock.Any(), dto.DecisionRequest{}, "b-1").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "reject with notes",
			path: "/admin/bookings/b-1/reject",
			body: strings.NewReader(`{"admin_notes":"see you then"}`),
			setup: func(svc *bookingMocks.MockBookingService) {
				svc.EXPECT().Reject(gomock.Any(), dto.DecisionRequest{AdminNotes: &notes}, "b-1").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "approve an already decided booking",
			path: "/admin/bookings/b-1/approve",
			setup: func(svc *bookingMocks.MockBookingService) {
				svc.EXPECT().Approve(gomock.Any(), gomock.Any(), "b-1").Return(failure.Conflict("booking is already approved"))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "malformed body",
			path:       "/admin/bookings/b-1/reject",
			body:       strings.NewReader(`{"admin_notes":`),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := serve(router, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_GetBookings(t *testing.T) {
	t.Run("builds filters from the query", func(t *testing.T) {
		router, svc := newRouter(t)
		svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
				assert.Len(t, filter.Filters, 4)

				return dto.GetBookingsResponse{}, nil
			})

		rec := serve(router, http.MethodGet, "/admin/bookings/?hall_id=hall-a&approval_status=pending&date_from=2026-11-01&date_to=2026-11-30", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("slot filter also matches legacy full day bookings", func(t *testing.T) {
		router, svc := newRouter(t)
		svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
				where, _ := filter.GetWhereClause()

				assert.Contains(t, where, "party_hall_bookings.time_slots && :time_slot OR (cardinality(party_hall_bookings.time_slots) = 0)")

				return dto.GetBookingsResponse{}, nil
			})

		rec := serve(router, http.MethodGet, "/admin/bookings/?time_slot=night", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects unknown slot filter", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := serve(router, http.MethodGet, "/admin/bookings/?time_slot=brunch", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed date range", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := serve(router, http.MethodGet, "/admin/bookings/?date_from=tomorrow", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
