package model

import "resto/shared/model"

const (
	TableName  = "party_halls"
	EntityName = "party_hall"

	FieldID           = "id"
	FieldName         = "name"
	FieldLocation     = "location"
	FieldCapacityMin  = "capacity_min"
	FieldCapacityMax  = "capacity_max"
	FieldIsActive     = "is_active"
	FieldDisplayOrder = "display_order"
)

var SortableFields = []string{FieldName, FieldLocation, FieldCapacityMax, FieldDisplayOrder, "created_at"}

type PartyHall struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Location     string  `db:"location"`
	Phone        string  `db:"phone"`
	MapsURL      *string `db:"maps_url"`
	ImageURL     *string `db:"image_url"`
	CapacityMin  int     `db:"capacity_min"`
	CapacityMax  int     `db:"capacity_max"`
	IsActive     bool    `db:"is_active"`
	DisplayOrder int     `db:"display_order"`
	model.Metadata
}

// Accommodates reports whether a party of guests fits the hall's capacity range.
func (h PartyHall) Accommodates(guests int) bool {
	if guests < h.CapacityMin {
		return false
	}

	return h.CapacityMax == 0 || guests <= h.CapacityMax
}
