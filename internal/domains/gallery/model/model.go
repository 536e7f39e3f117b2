package model

import "resto/shared/model"

const (
	TableName  = "gallery_images"
	EntityName = "gallery_image"

	FieldID           = "id"
	FieldImageURL     = "image_url"
	FieldThumbnailURL = "thumbnail_url"
	FieldTitle        = "title"
	FieldDisplayOrder = "display_order"
	FieldIsActive     = "is_active"
)

var SortableFields = []string{FieldTitle, FieldDisplayOrder, "created_at"}

// SpanClasses are the grid layouts the public gallery knows how to render.
var SpanClasses = []string{"", "col-span-1", "col-span-2", "row-span-2", "col-span-2 row-span-2"}

type GalleryImage struct {
	ID           string  `db:"id"`
	ImageURL     string  `db:"image_url"`
	ThumbnailURL *string `db:"thumbnail_url"`
	AltText      string  `db:"alt_text"`
	Title        *string `db:"title"`
	SpanClass    *string `db:"span_class"`
	DisplayOrder int     `db:"display_order"`
	IsActive     bool    `db:"is_active"`
	model.Metadata
}

// ObjectURLs lists the stored files that belong to the image.
func (g GalleryImage) ObjectURLs() []string {
	urls := []string{g.ImageURL}
	if g.ThumbnailURL != nil && *g.ThumbnailURL != "" {
		urls = append(urls, *g.ThumbnailURL)
	}

	return urls
}
