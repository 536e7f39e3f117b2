package model

import "resto/shared/model"

const (
	CategoryTableName  = "menu_categories"
	CategoryEntityName = "menu_category"
	ItemTableName      = "menu_items"
	ItemEntityName     = "menu_item"

	FieldID           = "id"
	FieldName         = "name"
	FieldCategoryID   = "category_id"
	FieldPrice        = "price"
	FieldRating       = "rating"
	FieldIsActive     = "is_active"
	FieldIsAvailable  = "is_available"
	FieldDisplayOrder = "display_order"
)

var (
	CategorySortableFields = []string{FieldName, FieldDisplayOrder, "created_at"}
	ItemSortableFields     = []string{FieldName, FieldPrice, FieldRating, FieldDisplayOrder, "created_at"}
)

type Category struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Description  *string `db:"description"`
	DisplayOrder int     `db:"display_order"`
	IsActive     bool    `db:"is_active"`
	model.Metadata
}

type Item struct {
	ID           string   `db:"id"`
	CategoryID   string   `db:"category_id"`
	CategoryName *string  `db:"category_name" table:"menu_categories" column:"name"`
	Name         string   `db:"name"`
	Description  *string  `db:"description"`
	Price        float64  `db:"price"`
	Rating       *float64 `db:"rating"`
	CookingTime  *string  `db:"cooking_time"`
	ImageURL     *string  `db:"image_url"`
	IsAvailable  bool     `db:"is_available"`
	DisplayOrder int      `db:"display_order"`
	model.Metadata
}

func (Item) GetJoinQuery() string {
	return "LEFT JOIN menu_categories ON menu_categories.id = menu_items.category_id"
}
