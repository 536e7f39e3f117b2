package dto_test

import (
	"resto/internal/domains/gallery/model"
	"resto/internal/domains/gallery/model/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestCreateGalleryImageRequest_ToModel(t *testing.T) {
	tests := []struct {
		name       string
		isActive   *bool
		wantActive bool
	}{
		{name: "defaults to active", wantActive: true},
		{name: "keeps explicit inactive", isActive: ptr(false), wantActive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateGalleryImageRequest{
				ImageURL:     "https://cdn.resto.test/gallery/hall.jpg",
				AltText:      "Main party hall",
				DisplayOrder: 3,
				IsActive:     tt.isActive,
			}

			m := req.ToModel("admin-1")

			assert.NotEmpty(t, m.ID)
			assert.Equal(t, req.ImageURL, m.ImageURL)
			assert.Equal(t, req.AltText, m.AltText)
			assert.Equal(t, 3, m.DisplayOrder)
			assert.Equal(t, tt.wantActive, m.IsActive)
			assert.Equal(t, "admin-1", m.CreatedBy)
			assert.Equal(t, "admin-1", m.ModifiedBy)
		})
	}
}

func TestUpdateGalleryImageRequest_Replaced(t *testing.T) {
	current := model.GalleryImage{
		ImageURL:     "https://cdn.resto.test/gallery/old.jpg",
		ThumbnailURL: ptr("https://cdn.resto.test/gallery/old-thumb.jpg"),
	}

	tests := []struct {
		name string
		req  dto.UpdateGalleryImageRequest
		want []string
	}{
		{
			name: "nothing replaced",
			req:  dto.UpdateGalleryImageRequest{AltText: "New caption"},
			want: []string{},
		},
		{
			name: "same image url",
			req:  dto.UpdateGalleryImageRequest{ImageURL: current.ImageURL},
			want: []string{},
		},
		{
			name: "image replaced",
			req:  dto.UpdateGalleryImageRequest{ImageURL: "https://cdn.resto.test/gallery/new.jpg"},
			want: []string{"https://cdn.resto.test/gallery/old.jpg"},
		},
		{
			name: "both replaced",
			req: dto.UpdateGalleryImageRequest{
				ImageURL:     "https://cdn.resto.test/gallery/new.jpg",
				ThumbnailURL: ptr("https://cdn.resto.test/gallery/new-thumb.jpg"),
			},
			want: []string{"https://cdn.resto.test/gallery/old.jpg", "https://cdn.resto.test/gallery/old-thumb.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Replaced(current))
		})
	}
}

func TestGetGalleryImagesResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	images := []model.GalleryImage{
		{ID: "img-1", ImageURL: "https://cdn.resto.test/1.jpg", AltText: "Buffet", IsActive: true, Metadata: gModel.NewMetadata("admin-1", now)},
		{ID: "img-2", ImageURL: "https://cdn.resto.test/2.jpg", AltText: "Stage", SpanClass: ptr("col-span-2"), Metadata: gModel.NewMetadata("admin-1", now)},
	}

	var response dto.GetGalleryImagesResponse
	response.FromModels(images, 15, 10)

	assert.Equal(t, 15, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Len(t, response.Images, 2)
	assert.Equal(t, "img-1", response.Images[0].ID)
	assert.True(t, response.Images[0].IsActive)
	assert.Equal(t, "col-span-2", *response.Images[1].SpanClass)
	assert.Equal(t, "admin-1", response.Images[1].CreatedBy)

	var empty dto.GetGalleryImagesResponse
	empty.FromModels(nil, 0, 10)

	assert.Equal(t, 1, empty.TotalPage)
	assert.Empty(t, empty.Images)
}
