package dto

import (
	"resto/internal/domains/videoreview/model"
	"resto/shared"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
)

type CreateVideoReviewRequest struct {
	ReviewerName string  `json:"reviewer_name" validate:"required,min=2,max=100"`
	ReviewerRole *string `json:"reviewer_role" validate:"omitempty,max=100"`
	VideoURL     string  `json:"video_url"     validate:"required,url"`
	ThumbnailURL *string `json:"thumbnail_url" validate:"omitempty,url"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
	IsActive     *bool   `json:"is_active"`
}

func (c *CreateVideoReviewRequest) ToModel(user string) model.VideoReview {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.VideoReview{
		ID:           uuid.NewString(),
		ReviewerName: c.ReviewerName,
		ReviewerRole: c.ReviewerRole,
		VideoURL:     c.VideoURL,
		ThumbnailURL: c.ThumbnailURL,
		DisplayOrder: c.DisplayOrder,
		IsActive:     active,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateVideoReviewRequest struct {
	ReviewerName string  `db:"reviewer_name" json:"reviewer_name" validate:"omitempty,min=2,max=100"`
	ReviewerRole *string `db:"reviewer_role" json:"reviewer_role" validate:"omitempty,max=100"`
	VideoURL     string  `db:"video_url"     json:"video_url"     validate:"omitempty,url"`
	ThumbnailURL *string `db:"thumbnail_url" json:"thumbnail_url" validate:"omitempty,url"`
	DisplayOrder *int    `db:"display_order" json:"display_order" validate:"omitempty,gte=0"`
	IsActive     *bool   `db:"is_active"     json:"is_active"`
}

// Replaced returns the stored URLs the update stops referencing.
func (u *UpdateVideoReviewRequest) Replaced(current model.VideoReview) []string {
	urls := []string{}

	if u.VideoURL != "" && u.VideoURL != current.VideoURL {
		urls = append(urls, current.VideoURL)
	}

	if u.ThumbnailURL != nil && current.ThumbnailURL != nil && *u.ThumbnailURL != *current.ThumbnailURL {
		urls = append(urls, *current.ThumbnailURL)
	}

	return urls
}

type VideoReviewResponse struct {
	ID           string  `json:"id"`
	ReviewerName string  `json:"reviewer_name"`
	ReviewerRole *string `json:"reviewer_role"`
	VideoURL     string  `json:"video_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
	gDto.Metadata
}

func (r *VideoReviewResponse) FromModel(m model.VideoReview) {
	r.ID = m.ID
	r.ReviewerName = m.ReviewerName
	r.ReviewerRole = m.ReviewerRole
	r.VideoURL = m.VideoURL
	r.ThumbnailURL = m.ThumbnailURL
	r.DisplayOrder = m.DisplayOrder
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)
}

type GetVideoReviewsResponse struct {
	Videos    []VideoReviewResponse `json:"videos"`
	TotalPage int                   `json:"total_page"`
	TotalData int                   `json:"total_data"`
}

func (r *GetVideoReviewsResponse) FromModels(models []model.VideoReview, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Videos = make([]VideoReviewResponse, len(models))
	for i, m := range models {
		r.Videos[i].FromModel(m)
	}
}
