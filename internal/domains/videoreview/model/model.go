package model

import "resto/shared/model"

const (
	TableName  = "food_review_videos"
	EntityName = "food_review_video"

	FieldID           = "id"
	FieldReviewerName = "reviewer_name"
	FieldIsActive     = "is_active"
	FieldDisplayOrder = "display_order"
)

var SortableFields = []string{FieldReviewerName, FieldDisplayOrder, "created_at"}

type VideoReview struct {
	ID           string  `db:"id"`
	ReviewerName string  `db:"reviewer_name"`
	ReviewerRole *string `db:"reviewer_role"`
	VideoURL     string  `db:"video_url"`
	ThumbnailURL *string `db:"thumbnail_url"`
	DisplayOrder int     `db:"display_order"`
	IsActive     bool    `db:"is_active"`
	model.Metadata
}

func (v VideoReview) ObjectURLs() []string {
	urls := []string{v.VideoURL}
	if v.ThumbnailURL != nil && *v.ThumbnailURL != "" {
		urls = append(urls, *v.ThumbnailURL)
	}

	return urls
}
