package model

import (
	"resto/shared/constant"
	"resto/shared/model"
	"slices"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "party_hall_bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldHallID         = "hall_id"
	FieldCustomerName   = "customer_name"
	FieldCustomerPhone  = "customer_phone"
	FieldBookingDate    = "booking_date"
	FieldTimeSlots      = "time_slots"
	FieldApprovalStatus = "approval_status"
	FieldAdminNotes     = "admin_notes"
	FieldApprovedAt     = "approved_at"
	FieldApprovedBy     = "approved_by"
	FieldCreatedAt      = "created_at"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	EventCreated  = "booking.created"
	EventApproved = "booking.approved"
	EventRejected = "booking.rejected"
)

var (
	// ActiveStatuses are the statuses whose bookings occupy their slots.
	ActiveStatuses = []string{StatusPending, StatusApproved}

	SortableFields = []string{FieldBookingDate, FieldCustomerName, FieldApprovalStatus, FieldCreatedAt}

	transitions = map[string][]string{
		StatusPending: {StatusApproved, StatusRejected},
	}
)

func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

type Booking struct {
	ID             string         `db:"id"`
	HallID         string         `db:"hall_id"`
	HallName       *string        `db:"hall_name"       table:"party_halls" column:"name"`
	CustomerName   string         `db:"customer_name"`
	CustomerPhone  string         `db:"customer_phone"`
	CustomerEmail  *string        `db:"customer_email"`
	BookingDate    time.Time      `db:"booking_date"`
	TimeSlots      pq.StringArray `db:"time_slots"`
	Purpose        *string        `db:"purpose"`
	GuestCount     *int           `db:"guest_count"`
	ApprovalStatus string         `db:"approval_status"`
	AdminNotes     *string        `db:"admin_notes"`
	ApprovedAt     *time.Time     `db:"approved_at"`
	ApprovedBy     *string        `db:"approved_by"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN party_halls ON party_halls.id = party_hall_bookings.hall_id"
}

// Occupied returns the slots held by the booking. Rows stored without slots hold the whole day.
func (b Booking) Occupied() []string {
	if len(b.TimeSlots) == 0 {
		return slices.Clone(constant.TimeSlots)
	}

	return ExpandSlots(b.TimeSlots)
}

func (b Booking) Claims() []SlotClaim {
	slots := b.Occupied()
	claims := make([]SlotClaim, len(slots))

	for i, slot := range slots {
		claims[i] = SlotClaim{
			BookingID:   b.ID,
			HallID:      b.HallID,
			BookingDate: b.BookingDate,
			TimeSlot:    slot,
		}
	}

	return claims
}

const (
	SlotClaimTableName  = "party_hall_booking_slots"
	SlotClaimEntityName = "booking_slot"
	FieldBookingID      = "booking_id"
)

// SlotClaim is the row that makes (hall, date, slot) exclusive to one booking.
type SlotClaim struct {
	BookingID   string    `db:"booking_id"`
	HallID      string    `db:"hall_id"`
	BookingDate time.Time `db:"booking_date"`
	TimeSlot    string    `db:"time_slot"`
}

// ExpandSlots resolves full_day, drops unknown names and duplicates, and returns the slots in day order.
func ExpandSlots(slots []string) []string {
	if slices.Contains(slots, constant.SlotFullDay) {
		return slices.Clone(constant.TimeSlots)
	}

	expanded := make([]string, 0, len(constant.TimeSlots))

	for _, slot := range constant.TimeSlots {
		if slices.Contains(slots, slot) {
			expanded = append(expanded, slot)
		}
	}

	return expanded
}

// UnionSlots returns every slot occupied by the given bookings, in day order.
func UnionSlots(bookings []Booking) []string {
	occupied := []string{}

	for _, b := range bookings {
		occupied = append(occupied, b.Occupied()...)
	}

	return ExpandSlots(occupied)
}

func Overlaps(a, b []string) bool {
	for _, slot := range a {
		if slices.Contains(b, slot) {
			return true
		}
	}

	return false
}

// IsFullyBooked reports whether every slot of the day is taken.
func IsFullyBooked(slots []string) bool {
	return len(ExpandSlots(slots)) == len(constant.TimeSlots)
}
