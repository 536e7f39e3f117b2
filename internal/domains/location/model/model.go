package model

import "resto/shared/model"

const (
	TableName  = "locations"
	EntityName = "location"

	FieldID           = "id"
	FieldName         = "name"
	FieldCity         = "city"
	FieldIsActive     = "is_active"
	FieldDisplayOrder = "display_order"
)

var SortableFields = []string{FieldName, FieldCity, FieldDisplayOrder, "created_at"}

type Location struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Address      string  `db:"address"`
	City         string  `db:"city"`
	Phone        *string `db:"phone"`
	Email        *string `db:"email"`
	MapURL       *string `db:"map_url"`
	OpeningTime  *string `db:"opening_time"`
	ClosingTime  *string `db:"closing_time"`
	IsActive     bool    `db:"is_active"`
	DisplayOrder int     `db:"display_order"`
	model.Metadata
}
