package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resto/config"
	"resto/infras/kafka"
	"resto/infras/otel"
	"resto/internal/domains/booking/model"
	"resto/internal/domains/booking/model/dto"
	"resto/internal/domains/booking/repository"
	hallModel "resto/internal/domains/partyhall/model"
	hallDto "resto/internal/domains/partyhall/model/dto"
	hallRepo "resto/internal/domains/partyhall/repository"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/timezone"

	"github.com/rs/zerolog/log"
)

var errSlotsTaken = failure.Conflict("requested time slots are no longer available")

type Booking interface {
	CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.AvailabilityResponse, error)
	GetBookedSlots(ctx context.Context, hallID, date string) ([]string, error)
	GetBookedDates(ctx context.Context, hallID, from, to string) ([]dto.BookedDate, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Approve(ctx context.Context, req dto.DecisionRequest, id string) error
	Reject(ctx context.Context, req dto.DecisionRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Booking
	hallRepo hallRepo.PartyHall
	cfg      *config.Config
	otel     otel.Otel
	kafka    kafka.Client
}

func New(repo repository.Booking, hallRepo hallRepo.PartyHall, cfg *config.Config, otel otel.Otel, kafka kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		hallRepo: hallRepo,
		cfg:      cfg,
		otel:     otel,
		kafka:    kafka,
	}
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("date must be a date in YYYY-MM-DD format")
	}

	hall, err := s.activeHall(ctx, req.HallID)
	if err != nil {
		return res, err
	}

	requested := model.ExpandSlots(req.TimeSlots)
	if len(requested) == 0 {
		return res, failure.BadRequestFromString("time_slots must contain at least one known slot")
	}

	occupancy, err := s.occupancy(ctx, []string{hall.ID}, date)
	if err != nil {
		return res, err
	}

	res.BookedSlots = occupancy[hall.ID]
	res.Available = !model.Overlaps(requested, res.BookedSlots)
	res.AlternativeHalls = []hallDto.PartyHallResponse{}

	if res.Available || !s.cfg.Booking.SuggestAlternatives {
		return res, nil
	}

	res.AlternativeHalls, err = s.alternatives(ctx, hall.ID, date, requested)
	if err != nil {
		return dto.AvailabilityResponse{}, err
	}

	return res, nil
}

// alternatives returns the other active halls, in display order, that have none of the requested slots taken.
func (s *serviceImpl) alternatives(ctx context.Context, excludeID string, date time.Time, requested []string) ([]hallDto.PartyHallResponse, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: hallModel.FieldIsActive, Value: true, Operator: gDto.FilterOperatorEq, Table: hallModel.TableName},
			gDto.Filter{Field: hallModel.FieldID, Value: excludeID, Operator: gDto.FilterOperatorNotEq, Table: hallModel.TableName},
		},
	}

	halls, err := s.hallRepo.GetAll(ctx, gDto.QueryParams{SortBy: hallModel.FieldDisplayOrder, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get alternative halls")

		return nil, fmt.Errorf("failed to get alternative halls: %w", err)
	}

	res := []hallDto.PartyHallResponse{}
	if len(halls) == 0 {
		return res, nil
	}

	ids := make([]string, len(halls))
	for i, h := range halls {
		ids[i] = h.ID
	}

	occupancy, err := s.occupancy(ctx, ids, date)
	if err != nil {
		return nil, err
	}

	for _, h := range halls {
		if model.Overlaps(requested, occupancy[h.ID]) {
			continue
		}

		var hall hallDto.PartyHallResponse
		hall.FromModel(h)

		res = append(res, hall)
	}

	return res, nil
}

func (s *serviceImpl) GetBookedSlots(ctx context.Context, hallID, date string) (res []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetBookedSlots")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	day, err := dto.ParseDate(date)
	if err != nil {
		return nil, failure.BadRequestFromString("date must be a date in YYYY-MM-DD format")
	}

	if _, err = s.activeHall(ctx, hallID); err != nil {
		return nil, err
	}

	occupancy, err := s.occupancy(ctx, []string{hallID}, day)
	if err != nil {
		return nil, err
	}

	if slots, ok := occupancy[hallID]; ok {
		return slots, nil
	}

	return []string{}, nil
}

func (s *serviceImpl) GetBookedDates(ctx context.Context, hallID, from, to string) (res []dto.BookedDate, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetBookedDates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := s.window(from, to)
	if err != nil {
		return nil, err
	}

	if _, err = s.activeHall(ctx, hallID); err != nil {
		return nil, err
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldHallID, Value: hallID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldApprovalStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
			gDto.Filter{Field: model.FieldBookingDate, ArgName: "date_from", Value: start, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldBookingDate, ArgName: "date_to", Value: end, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
		},
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldBookingDate, SortDir: gDto.SortDirAsc}

	bookings, err := s.repo.GetAll(ctx, params, filter, model.FieldBookingDate, model.FieldTimeSlots)
	if err != nil {
		log.Error().Err(err).Str("hall_id", hallID).Msg("failed to get booked dates")

		return nil, fmt.Errorf("failed to get booked dates: %w", err)
	}

	byDate := map[string][]model.Booking{}
	order := []string{}

	for _, b := range bookings {
		day := b.BookingDate.Format(constant.DateOnlyFormat)
		if _, ok := byDate[day]; !ok {
			order = append(order, day)
		}

		byDate[day] = append(byDate[day], b)
	}

	res = make([]dto.BookedDate, len(order))
	for i, day := range order {
		slots := model.UnionSlots(byDate[day])

		res[i] = dto.BookedDate{Date: day, Slots: slots, FullyBooked: model.IsFullyBooked(slots)}
	}

	return res, nil
}

// window resolves the optional date range of GetBookedDates. It defaults to today onward.
func (s *serviceImpl) window(from, to string) (start, end time.Time, err error) {
	start = today()
	if from != constant.Empty {
		if start, err = dto.ParseDate(from); err != nil {
			return start, end, failure.BadRequestFromString("from must be a date in YYYY-MM-DD format")
		}
	}

	days := s.cfg.Booking.BookedDatesWindow
	if days <= 0 {
		days = 180
	}

	end = start.AddDate(0, 0, days)
	if to != constant.Empty {
		if end, err = dto.ParseDate(to); err != nil {
			return start, end, failure.BadRequestFromString("to must be a date in YYYY-MM-DD format")
		}
	}

	if end.Before(start) {
		return start, end, failure.BadRequestFromString("to must not be before from")
	}

	return start, end, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || user == constant.Empty {
		user = constant.ContextGuest
	}

	booking, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequestFromString("booking_date must be a date in YYYY-MM-DD format")
	}

	if len(booking.TimeSlots) == 0 {
		return res, failure.BadRequestFromString("time_slots must contain at least one known slot")
	}

	if booking.BookingDate.Before(today()) {
		return res, failure.BadRequestFromString("booking_date must not be in the past")
	}

	hall, err := s.activeHall(ctx, req.HallID)
	if err != nil {
		return res, err
	}

	if booking.GuestCount != nil && !hall.Accommodates(*booking.GuestCount) {
		return res, failure.BadRequestFromString(fmt.Sprintf("guest_count must be between %d and %d for this hall", hall.CapacityMin, hall.CapacityMax))
	}

	occupancy, err := s.occupancy(ctx, []string{hall.ID}, booking.BookingDate)
	if err != nil {
		return res, err
	}

	if model.Overlaps(booking.Occupied(), occupancy[hall.ID]) {
		return res, errSlotsTaken
	}

	if err = s.repo.Reserve(ctx, booking); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, errSlotsTaken
		}

		log.Error().Err(err).Msg("failed to reserve booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.HallName = &hall.Name

	s.publish(ctx, model.EventCreated, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Restrict(model.SortableFields, model.FieldBookingDate, gDto.SortDirDesc)
	req.SortBy = model.TableName + "." + req.SortBy

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	next, err := req.Apply(current)
	if err != nil {
		return failure.BadRequestFromString("booking_date must be a date in YYYY-MM-DD format")
	}

	if req.GuestCount != nil {
		hall, err := s.hallRepo.Get(ctx, shared.FilterByID(current.HallID, hallModel.FieldID, hallModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get party hall: %w", err)
		}

		if hall.ID != constant.Empty && !hall.Accommodates(*req.GuestCount) {
			return failure.BadRequestFromString(fmt.Sprintf("guest_count must be between %d and %d for this hall", hall.CapacityMin, hall.CapacityMax))
		}
	}

	fields := shared.TransformFields(req, user)

	if !req.Reschedules(current) {
		if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", err)
		}

		return nil
	}

	if next.BookingDate.Before(today()) {
		return failure.BadRequestFromString("booking_date must not be in the past")
	}

	fields[model.FieldBookingDate] = next.BookingDate
	fields[model.FieldTimeSlots] = next.TimeSlots

	if err = s.repo.Reschedule(ctx, next, fields); err != nil {
		if shared.IsUniqueViolation(err) {
			return errSlotsTaken
		}

		log.Error().Err(err).Msg("failed to reschedule booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

func (s *serviceImpl) Approve(ctx context.Context, req dto.DecisionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Approve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	fields := map[string]any{
		model.FieldApprovalStatus: model.StatusApproved,
		model.FieldApprovedAt:     now,
		model.FieldApprovedBy:     user,
		constant.FieldModifiedAt:  now,
		constant.FieldModifiedBy:  user,
	}

	booking, err := s.transition(ctx, id, model.StatusApproved, req, fields, false)
	if err != nil {
		return err
	}

	booking.ApprovedAt = &now
	booking.ApprovedBy = &user

	s.publish(ctx, model.EventApproved, booking)

	return nil
}

func (s *serviceImpl) Reject(ctx context.Context, req dto.DecisionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Reject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldApprovalStatus: model.StatusRejected,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  user,
	}

	booking, err := s.transition(ctx, id, model.StatusRejected, req, fields, true)
	if err != nil {
		return err
	}

	s.publish(ctx, model.EventRejected, booking)

	return nil
}

// transition moves a booking to status if the approval state machine allows it.
func (s *serviceImpl) transition(ctx context.Context, id, status string, req dto.DecisionRequest, fields map[string]any, release bool) (model.Booking, error) {
	current, err := s.get(ctx, id)
	if err != nil {
		return current, err
	}

	if !model.CanTransition(current.ApprovalStatus, status) {
		return current, failure.Conflict(fmt.Sprintf("booking is already %s", current.ApprovalStatus))
	}

	if req.AdminNotes != nil {
		fields[model.FieldAdminNotes] = *req.AdminNotes
		current.AdminNotes = req.AdminNotes
	}

	if err = s.repo.Transition(ctx, id, current.ApprovalStatus, fields, release); err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return current, failure.Conflict("booking was updated by someone else, reload and try again")
		}

		log.Error().Err(err).Str("id", id).Str("status", status).Msg("failed to change booking status")

		return current, fmt.Errorf("failed to change booking status: %w", err)
	}

	current.ApprovalStatus = status

	return current, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) activeHall(ctx context.Context, id string) (hallModel.PartyHall, error) {
	if id == constant.Empty {
		return hallModel.PartyHall{}, failure.BadRequestFromString("hall_id is required")
	}

	hall, err := s.hallRepo.Get(ctx, shared.FilterByID(id, hallModel.FieldID, hallModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("hall_id", id).Msg("failed to get party hall")

		return hall, fmt.Errorf("failed to get party hall: %w", err)
	}

	if hall.ID == constant.Empty || !hall.IsActive {
		return hall, failure.NotFound("party hall not found")
	}

	return hall, nil
}

// occupancy returns, per hall, the union of slots held by pending and approved bookings on date.
func (s *serviceImpl) occupancy(ctx context.Context, hallIDs []string, date time.Time) (map[string][]string, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldHallID, Value: hallIDs, Operator: gDto.FilterOperatorIn, Table: model.TableName},
			gDto.Filter{Field: model.FieldBookingDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldApprovalStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter, model.FieldHallID, model.FieldTimeSlots)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for date")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	byHall := map[string][]model.Booking{}
	for _, b := range bookings {
		byHall[b.HallID] = append(byHall[b.HallID], b)
	}

	res := make(map[string][]string, len(hallIDs))
	for _, id := range hallIDs {
		res[id] = model.UnionSlots(byHall[id])
	}

	return res, nil
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	var event dto.Event
	event.FromModel(eventType, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		msg := kafka.Message{Key: booking.ID, Value: event}
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Booking, msg); err != nil {
			log.Error().Err(err).Str("type", eventType).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func today() time.Time {
	return timezone.Today()
}
