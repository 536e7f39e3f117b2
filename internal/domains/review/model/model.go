package model

import "resto/shared/model"

const (
	TableName  = "customer_reviews"
	EntityName = "customer_review"

	FieldID         = "id"
	FieldRating     = "rating"
	FieldIsApproved = "is_approved"
	FieldCreatedAt  = "created_at"
)

var SortableFields = []string{"customer_name", FieldRating, FieldIsApproved, FieldCreatedAt}

type CustomerReview struct {
	ID           string  `db:"id"`
	CustomerName string  `db:"customer_name"`
	Email        *string `db:"email"`
	Phone        *string `db:"phone"`
	Location     *string `db:"location"`
	Rating       int     `db:"rating"`
	ReviewText   string  `db:"review_text"`
	IsApproved   bool    `db:"is_approved"`
	model.Metadata
}
