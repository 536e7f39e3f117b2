package dto

import (
	"resto/internal/domains/gallery/model"
	"resto/shared"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
)

type CreateGalleryImageRequest struct {
	ImageURL     string  `json:"image_url"     validate:"required,url"`
	ThumbnailURL *string `json:"thumbnail_url" validate:"omitempty,url"`
	AltText      string  `json:"alt_text"      validate:"required,max=255"`
	Title        *string `json:"title"         validate:"omitempty,max=255"`
	SpanClass    *string `json:"span_class"    validate:"omitempty,max=50"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
	IsActive     *bool   `json:"is_active"`
}

func (c *CreateGalleryImageRequest) ToModel(user string) model.GalleryImage {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.GalleryImage{
		ID:           uuid.NewString(),
		ImageURL:     c.ImageURL,
		ThumbnailURL: c.ThumbnailURL,
		AltText:      c.AltText,
		Title:        c.Title,
		SpanClass:    c.SpanClass,
		DisplayOrder: c.DisplayOrder,
		IsActive:     active,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateGalleryImageRequest struct {
	ImageURL     string  `db:"image_url"     json:"image_url"     validate:"omitempty,url"`
	ThumbnailURL *string `db:"thumbnail_url" json:"thumbnail_url" validate:"omitempty,url"`
	AltText      string  `db:"alt_text"      json:"alt_text"      validate:"omitempty,max=255"`
	Title        *string `db:"title"         json:"title"         validate:"omitempty,max=255"`
	SpanClass    *string `db:"span_class"    json:"span_class"    validate:"omitempty,max=50"`
	DisplayOrder *int    `db:"display_order" json:"display_order" validate:"omitempty,gte=0"`
	IsActive     *bool   `db:"is_active"     json:"is_active"`
}

// Replaced returns the stored URLs the update stops referencing.
func (u *UpdateGalleryImageRequest) Replaced(current model.GalleryImage) []string {
	urls := []string{}

	if u.ImageURL != "" && u.ImageURL != current.ImageURL {
		urls = append(urls, current.ImageURL)
	}

	if u.ThumbnailURL != nil && current.ThumbnailURL != nil && *u.ThumbnailURL != *current.ThumbnailURL {
		urls = append(urls, *current.ThumbnailURL)
	}

	return urls
}

type GalleryImageResponse struct {
	ID           string  `json:"id"`
	ImageURL     string  `json:"image_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	AltText      string  `json:"alt_text"`
	Title        *string `json:"title"`
	SpanClass    *string `json:"span_class"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
	gDto.Metadata
}

func (r *GalleryImageResponse) FromModel(m model.GalleryImage) {
	r.ID = m.ID
	r.ImageURL = m.ImageURL
	r.ThumbnailURL = m.ThumbnailURL
	r.AltText = m.AltText
	r.Title = m.Title
	r.SpanClass = m.SpanClass
	r.DisplayOrder = m.DisplayOrder
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)
}

type GetGalleryImagesResponse struct {
	Images    []GalleryImageResponse `json:"images"`
	TotalPage int                    `json:"total_page"`
	TotalData int                    `json:"total_data"`
}

func (r *GetGalleryImagesResponse) FromModels(models []model.GalleryImage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Images = make([]GalleryImageResponse, len(models))
	for i, m := range models {
		r.Images[i].FromModel(m)
	}
}
