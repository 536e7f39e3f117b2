package dto

import (
	"slices"
	"time"

	"resto/internal/domains/booking/model"
	hallDto "resto/internal/domains/partyhall/model/dto"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CheckAvailabilityRequest struct {
	HallID    string   `json:"hall_id"    validate:"required,uuid"`
	Date      string   `json:"date"       validate:"required,dateonly"`
	TimeSlots []string `json:"time_slots" validate:"required,min=1,unique,dive,timeslot"`
}

type AvailabilityResponse struct {
	Available        bool                        `json:"available"`
	BookedSlots      []string                    `json:"booked_slots"`
	AlternativeHalls []hallDto.PartyHallResponse `json:"alternative_halls"`
}

type BookedDate struct {
	Date        string   `json:"date"`
	Slots       []string `json:"slots"`
	FullyBooked bool     `json:"fully_booked"`
}

type CreateBookingRequest struct {
	HallID        string   `json:"hall_id"        validate:"required,uuid"`
	CustomerName  string   `json:"customer_name"  validate:"required,min=2,max=100"`
	CustomerPhone string   `json:"customer_phone" validate:"required,min=6,max=20"`
	CustomerEmail *string  `json:"customer_email" validate:"omitempty,email,max=100"`
	BookingDate   string   `json:"booking_date"   validate:"required,dateonly"`
	TimeSlots     []string `json:"time_slots"     validate:"required,min=1,unique,dive,timeslot"`
	Purpose       *string  `json:"purpose"        validate:"omitempty,max=500"`
	GuestCount    *int     `json:"guest_count"    validate:"omitempty,gt=0"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	date, err := ParseDate(c.BookingDate)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:             uuid.NewString(),
		HallID:         c.HallID,
		CustomerName:   c.CustomerName,
		CustomerPhone:  c.CustomerPhone,
		CustomerEmail:  c.CustomerEmail,
		BookingDate:    date,
		TimeSlots:      pq.StringArray(model.ExpandSlots(c.TimeSlots)),
		Purpose:        c.Purpose,
		GuestCount:     c.GuestCount,
		ApprovalStatus: model.StatusPending,
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

// UpdateBookingRequest carries admin edits. The approval status is changed only through Approve and Reject.
type UpdateBookingRequest struct {
	CustomerName  string   `db:"customer_name"  json:"customer_name"  validate:"omitempty,min=2,max=100"`
	CustomerPhone string   `db:"customer_phone" json:"customer_phone" validate:"omitempty,min=6,max=20"`
	CustomerEmail *string  `db:"customer_email" json:"customer_email" validate:"omitempty,email,max=100"`
	Purpose       *string  `db:"purpose"        json:"purpose"        validate:"omitempty,max=500"`
	GuestCount    *int     `db:"guest_count"    json:"guest_count"    validate:"omitempty,gt=0"`
	AdminNotes    *string  `db:"admin_notes"    json:"admin_notes"    validate:"omitempty,max=1000"`
	BookingDate   string   `json:"booking_date"   validate:"omitempty,dateonly"`
	TimeSlots     []string `json:"time_slots"     validate:"omitempty,min=1,unique,dive,timeslot"`
}

// Reschedules reports whether the request moves the booking to another date or slot set.
func (u *UpdateBookingRequest) Reschedules(current model.Booking) bool {
	if u.BookingDate != "" && u.BookingDate != current.BookingDate.Format(constant.DateOnlyFormat) {
		return true
	}

	if len(u.TimeSlots) == 0 {
		return false
	}

	return !slices.Equal(model.ExpandSlots(u.TimeSlots), current.Occupied())
}

// Apply returns the booking as it would look after the schedule change.
func (u *UpdateBookingRequest) Apply(current model.Booking) (model.Booking, error) {
	next := current

	if u.BookingDate != "" {
		date, err := ParseDate(u.BookingDate)
		if err != nil {
			return next, err
		}

		next.BookingDate = date
	}

	if len(u.TimeSlots) > 0 {
		next.TimeSlots = pq.StringArray(model.ExpandSlots(u.TimeSlots))
	}

	if u.GuestCount != nil {
		next.GuestCount = u.GuestCount
	}

	return next, nil
}

type DecisionRequest struct {
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=1000"`
}

type BookingResponse struct {
	ID             string   `json:"id"`
	HallID         string   `json:"hall_id"`
	HallName       *string  `json:"hall_name"`
	CustomerName   string   `json:"customer_name"`
	CustomerPhone  string   `json:"customer_phone"`
	CustomerEmail  *string  `json:"customer_email"`
	BookingDate    string   `json:"booking_date"`
	TimeSlots      []string `json:"time_slots"`
	Purpose        *string  `json:"purpose"`
	GuestCount     *int     `json:"guest_count"`
	ApprovalStatus string   `json:"approval_status"`
	AdminNotes     *string  `json:"admin_notes"`
	ApprovedAt     *string  `json:"approved_at"`
	ApprovedBy     *string  `json:"approved_by"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.HallID = m.HallID
	r.HallName = m.HallName
	r.CustomerName = m.CustomerName
	r.CustomerPhone = m.CustomerPhone
	r.CustomerEmail = m.CustomerEmail
	r.BookingDate = m.BookingDate.Format(constant.DateOnlyFormat)
	r.TimeSlots = m.Occupied()
	r.Purpose = m.Purpose
	r.GuestCount = m.GuestCount
	r.ApprovalStatus = m.ApprovalStatus
	r.AdminNotes = m.AdminNotes
	r.ApprovedBy = m.ApprovedBy
	r.Metadata.FromModel(m.Metadata)

	if m.ApprovedAt != nil {
		approvedAt := m.ApprovedAt.Format(constant.DateFormat)
		r.ApprovedAt = &approvedAt
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, m := range models {
		r.Bookings[i].FromModel(m)
	}
}

// Event is the payload published for every booking lifecycle change.
type Event struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	HallID        string    `json:"hall_id"`
	HallName      string    `json:"hall_name"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	BookingDate   string    `json:"booking_date"`
	TimeSlots     []string  `json:"time_slots"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (e *Event) FromModel(eventType string, m model.Booking) {
	e.Type = eventType
	e.BookingID = m.ID
	e.HallID = m.HallID
	e.CustomerName = m.CustomerName
	e.CustomerPhone = m.CustomerPhone
	e.BookingDate = m.BookingDate.Format(constant.DateOnlyFormat)
	e.TimeSlots = m.Occupied()
	e.Status = m.ApprovalStatus
	e.OccurredAt = timezone.Now()

	if m.HallName != nil {
		e.HallName = *m.HallName
	}
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(constant.DateOnlyFormat, value, time.UTC)
}
