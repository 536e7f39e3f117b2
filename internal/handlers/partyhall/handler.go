package partyhall

import (
	"net/http"
	"resto/infras/otel"
	bookingService "resto/internal/domains/booking/service"
	"resto/internal/domains/partyhall/model"
	"resto/internal/domains/partyhall/model/dto"
	"resto/internal/domains/partyhall/service"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/validator"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.PartyHall
	booking bookingService.Booking
	otel    otel.Otel
}

func New(service service.PartyHall, booking bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		booking: booking,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/party-halls", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetActivePartyHalls)
		routerGroup.Get("/{id}", handler.GetActivePartyHallByID)
		routerGroup.Get("/{id}/booked-slots", handler.GetBookedSlots)
		routerGroup.Get("/{id}/booked-dates", handler.GetBookedDates)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/party-halls", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePartyHall)
		routerGroup.Get("/", handler.GetPartyHalls)
		routerGroup.Get("/{id}", handler.GetPartyHallByID)
		routerGroup.Patch("/{id}", handler.UpdatePartyHall)
		routerGroup.Delete("/{id}", handler.DeletePartyHall)
	})
}

// GetActivePartyHalls lists the halls shown on the booking page.
// @Summary List active party halls
// @Tags PartyHall
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPartyHallsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/party-halls [get]
func (handler *Handler) GetActivePartyHalls(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivePartyHalls")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	halls, err := handler.service.GetAll(ctx, queryParams, shared.FilterByField(model.FieldIsActive, true, model.TableName))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get party halls")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, halls)
}

// GetActivePartyHallByID returns one active hall.
// @Summary Get an active party hall
// @Tags PartyHall
// @Produce json
// @Param id path string true "Party hall ID"
// @Success 200 {object} response.Data[dto.PartyHallResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/party-halls/{id} [get]
func (handler *Handler) GetActivePartyHallByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivePartyHallByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	hall, err := handler.service.Get(ctx, id)
	if err == nil && !hall.IsActive {
		err = failure.NotFound("party hall not found")
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get party hall by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hall)
}

// GetBookedSlots returns the slots already taken on a date.
// @Summary Booked slots of a hall on a date
// @Description Slots held by pending or approved bookings. A legacy full-day booking reports every slot.
// @Tags PartyHall
// @Produce json
// @Param id path string true "Party hall ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[[]string]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/party-halls/{id}/booked-slots [get]
func (handler *Handler) GetBookedSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookedSlots")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	slots, err := handler.booking.GetBookedSlots(ctx, id, r.URL.Query().Get("date"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("hall_id", id).Msg("failed to get booked slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// GetBookedDates returns the calendar occupancy of a hall.
// @Summary Booked dates of a hall
// @Tags PartyHall
// @Produce json
// @Param id path string true "Party hall ID"
// @Param from query string false "Start date (YYYY-MM-DD), defaults to today"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[any]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/party-halls/{id}/booked-dates [get]
func (handler *Handler) GetBookedDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookedDates")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	query := r.URL.Query()

	dates, err := handler.booking.GetBookedDates(ctx, id, query.Get("from"), query.Get("to"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("hall_id", id).Msg("failed to get booked dates")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dates)
}

// CreatePartyHall handles the creation of a new party hall.
// @Summary Create a party hall
// @Tags Admin PartyHall
// @Accept json
// @Produce json
// @Param request body dto.CreatePartyHallRequest true "Create Party Hall Request"
// @Success 201 {object} response.Data[dto.PartyHallResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/party-halls [post]
// @Security BearerAuth
func (handler *Handler) CreatePartyHall(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePartyHall")
	defer scope.End()

	req := dto.CreatePartyHallRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	hall, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create party hall")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Party hall created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, hall)
}

// GetPartyHalls lists every hall for the admin dashboard.
// @Summary List party halls
// @Tags Admin PartyHall
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param location query string false "Filter by location"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetPartyHallsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/party-halls [get]
// @Security BearerAuth
func (handler *Handler) GetPartyHalls(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPartyHalls")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd)

	if name := query.Get(model.FieldName); name != "" {
		filterGroup.Add(gDto.NewFilter(model.TableName, model.FieldName, gDto.FilterOperatorLike, name))
	}

	if location := query.Get(model.FieldLocation); location != "" {
		filterGroup.Add(gDto.NewFilter(model.TableName, model.FieldLocation, gDto.FilterOperatorLike, location))
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldIsActive)); active != nil {
		filterGroup.Add(gDto.NewFilter(model.TableName, model.FieldIsActive, gDto.FilterOperatorEq, *active))
	}

	halls, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get party halls")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, halls)
}

// GetPartyHallByID retrieves a hall regardless of its active flag.
// @Summary Get a party hall
// @Tags Admin PartyHall
// @Produce json
// @Param id path string true "Party hall ID"
// @Success 200 {object} response.Data[dto.PartyHallResponse]
// @Failure 404 {object} response.Error
// @Router /v1/admin/party-halls/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPartyHallByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPartyHallByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	hall, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get party hall by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hall)
}

// UpdatePartyHall applies a partial update.
// @Summary Update a party hall
// @Tags Admin PartyHall
// @Accept json
// @Produce json
// @Param id path string true "Party hall ID"
// @Param request body dto.UpdatePartyHallRequest true "Update Party Hall Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/party-halls/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePartyHall(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePartyHall")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePartyHallRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update party hall")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Party hall updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Party hall updated successfully")
}

// DeletePartyHall removes a hall that has no bookings.
// @Summary Delete a party hall
// @Tags Admin PartyHall
// @Produce json
// @Param id path string true "Party hall ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/party-halls/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePartyHall(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePartyHall")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete party hall")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Party hall deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Party hall deleted successfully")
}
