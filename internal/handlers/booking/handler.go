package booking

import (
	"context"
	"net/http"
	"resto/infras/otel"
	"resto/internal/domains/booking/model"
	"resto/internal/domains/booking/model/dto"
	"resto/internal/domains/booking/service"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/validator"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const (
	queryDateFrom = "date_from"
	queryDateTo   = "date_to"
	queryTimeSlot = "time_slot"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/bookings/availability", handler.CheckAvailability)
}

// SubmissionRouter registers the public booking form, which counts against the submission budget.
func (handler *Handler) SubmissionRouter(router chi.Router) {
	router.Post("/bookings", handler.CreateBooking)
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Post("/", handler.AdminCreateBooking)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Post("/{id}/approve", handler.ApproveBooking)
		routerGroup.Post("/{id}/reject", handler.RejectBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// CheckAvailability reports whether the requested slots are free.
// @Summary Check hall availability
// @Description Read-only check. Unavailable requests may list alternative halls free for every requested slot.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CheckAvailabilityRequest true "Availability Request"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/availability [post]
func (handler *Handler) CheckAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.CheckAvailabilityRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CheckAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateBooking submits a booking request.
// @Summary Submit a booking
// @Description Creates a pending booking. Overlapping an existing pending or approved booking returns 409.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking submitted for hall " + booking.HallID)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// AdminCreateBooking records a booking taken by phone or at the counter.
// @Summary Create a booking
// @Description Same availability rules as the public form. The booking starts pending.
// @Tags Admin Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings [post]
// @Security BearerAuth
func (handler *Handler) AdminCreateBooking(writer http.ResponseWriter, request *http.Request) {
	handler.CreateBooking(writer, request)
}

// GetBookings retrieves bookings for the admin dashboard.
// @Summary List bookings
// @Tags Admin Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hall_id query string false "Filter by hall ID"
// @Param approval_status query string false "Filter by status (pending, approved, rejected)"
// @Param date_from query string false "Bookings on or after this date (YYYY-MM-DD)"
// @Param date_to query string false "Bookings on or before this date (YYYY-MM-DD)"
// @Param time_slot query string false "Bookings holding this slot (morning, evening, night)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd)

	if hallID := query.Get(model.FieldHallID); hallID != "" {
		filterGroup.Add(gDto.NewFilter(model.TableName, model.FieldHallID, gDto.FilterOperatorEq, hallID))
	}

	if status := query.Get(model.FieldApprovalStatus); status != "" {
		filterGroup.Add(gDto.NewFilter(model.TableName, model.FieldApprovalStatus, gDto.FilterOperatorEq, status))
	}

	if slot := query.Get(queryTimeSlot); slot != "" {
		if err := validator.ValidateVar(slot, "oneof=morning evening night"); err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		filterGroup.Add(gDto.NewFilterGroup(gDto.FilterGroupOperatorOr,
			gDto.Filter{
				ArgName:  queryTimeSlot,
				Field:    model.FieldTimeSlots,
				Operator: gDto.FilterOperatorOverlaps,
				Value:    []string{slot},
				Table:    model.TableName,
			},
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value:    "cardinality(" + model.TableName + "." + model.FieldTimeSlots + ") = 0",
			},
		))
	}

	for arg, operator := range map[string]string{queryDateFrom: gDto.FilterOperatorGreaterEq, queryDateTo: gDto.FilterOperatorLessEq} {
		value := query.Get(arg)
		if value == "" {
			continue
		}

		if err := validator.ValidateVar(value, "dateonly"); err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		filterGroup.Add(gDto.Filter{
			ArgName:  arg,
			Field:    model.FieldBookingDate,
			Operator: operator,
			Value:    value,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking
// @Tags Admin Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking edits customer details, date or slots. The approval status is never touched.
// @Summary Update a booking
// @Tags Admin Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking updated successfully")
}

// ApproveBooking moves a pending booking to approved.
// @Summary Approve a booking
// @Tags Admin Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.DecisionRequest false "Admin notes"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/bookings/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	handler.decide(w, r, "ApproveBooking", handler.service.Approve, "Booking approved successfully")
}

// RejectBooking moves a pending booking to rejected and frees its slots.
// @Summary Reject a booking
// @Tags Admin Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.DecisionRequest false "Admin notes"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/bookings/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	handler.decide(w, r, "RejectBooking", handler.service.Reject, "Booking rejected successfully")
}

// DeleteBooking deletes a booking by its ID.
// @Summary Delete a booking
// @Tags Admin Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

type decision func(ctx context.Context, req dto.DecisionRequest, id string) error

func (handler *Handler) decide(w http.ResponseWriter, r *http.Request, name string, apply decision, message string) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.DecisionRequest{}
	if r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	if err := apply(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to decide booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent(message + " by user " + user)

	response.WithMessage(w, http.StatusOK, message)
}
