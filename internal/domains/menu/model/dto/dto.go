package dto

import (
	"resto/internal/domains/menu/model"
	"resto/shared"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name         string  `json:"name"          validate:"required,min=2,max=100"`
	Description  *string `json:"description"   validate:"omitempty,max=500"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
	IsActive     *bool   `json:"is_active"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.Category{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Description:  c.Description,
		DisplayOrder: c.DisplayOrder,
		IsActive:     active,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateCategoryRequest struct {
	Name         string  `db:"name"          json:"name"          validate:"omitempty,min=2,max=100"`
	Description  *string `db:"description"   json:"description"   validate:"omitempty,max=500"`
	DisplayOrder *int    `db:"display_order" json:"display_order" validate:"omitempty,gte=0"`
	IsActive     *bool   `db:"is_active"     json:"is_active"`
}

type CategoryResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(m model.Category) {
	r.ID = m.ID
	r.Name = m.Name
	r.Description = m.Description
	r.DisplayOrder = m.DisplayOrder
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Categories = make([]CategoryResponse, len(models))
	for i, m := range models {
		r.Categories[i].FromModel(m)
	}
}

type CreateItemRequest struct {
	CategoryID   string   `json:"category_id"   validate:"required,uuid"`
	Name         string   `json:"name"          validate:"required,min=2,max=150"`
	Description  *string  `json:"description"   validate:"omitempty,max=1000"`
	Price        float64  `json:"price"         validate:"gte=0"`
	Rating       *float64 `json:"rating"        validate:"omitempty,gte=0,lte=5"`
	CookingTime  *string  `json:"cooking_time"  validate:"omitempty,max=50"`
	ImageURL     *string  `json:"image_url"     validate:"omitempty,url"`
	IsAvailable  *bool    `json:"is_available"`
	DisplayOrder int      `json:"display_order" validate:"gte=0"`
}

func (c *CreateItemRequest) ToModel(user string) model.Item {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	return model.Item{
		ID:           uuid.NewString(),
		CategoryID:   c.CategoryID,
		Name:         c.Name,
		Description:  c.Description,
		Price:        c.Price,
		Rating:       c.Rating,
		CookingTime:  c.CookingTime,
		ImageURL:     c.ImageURL,
		IsAvailable:  available,
		DisplayOrder: c.DisplayOrder,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateItemRequest struct {
	CategoryID   string   `db:"category_id"   json:"category_id"   validate:"omitempty,uuid"`
	Name         string   `db:"name"          json:"name"          validate:"omitempty,min=2,max=150"`
	Description  *string  `db:"description"   json:"description"   validate:"omitempty,max=1000"`
	Price        *float64 `db:"price"         json:"price"         validate:"omitempty,gte=0"`
	Rating       *float64 `db:"rating"        json:"rating"        validate:"omitempty,gte=0,lte=5"`
	CookingTime  *string  `db:"cooking_time"  json:"cooking_time"  validate:"omitempty,max=50"`
	ImageURL     *string  `db:"image_url"     json:"image_url"     validate:"omitempty,url"`
	IsAvailable  *bool    `db:"is_available"  json:"is_available"`
	DisplayOrder *int     `db:"display_order" json:"display_order" validate:"omitempty,gte=0"`
}

type ItemResponse struct {
	ID           string   `json:"id"`
	CategoryID   string   `json:"category_id"`
	CategoryName *string  `json:"category_name,omitempty"`
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Price        float64  `json:"price"`
	Rating       *float64 `json:"rating"`
	CookingTime  *string  `json:"cooking_time"`
	ImageURL     *string  `json:"image_url"`
	IsAvailable  bool     `json:"is_available"`
	DisplayOrder int      `json:"display_order"`
	gDto.Metadata
}

func (r *ItemResponse) FromModel(m model.Item) {
	r.ID = m.ID
	r.CategoryID = m.CategoryID
	r.CategoryName = m.CategoryName
	r.Name = m.Name
	r.Description = m.Description
	r.Price = m.Price
	r.Rating = m.Rating
	r.CookingTime = m.CookingTime
	r.ImageURL = m.ImageURL
	r.IsAvailable = m.IsAvailable
	r.DisplayOrder = m.DisplayOrder
	r.Metadata.FromModel(m.Metadata)
}

type GetItemsResponse struct {
	Items     []ItemResponse `json:"items"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetItemsResponse) FromModels(models []model.Item, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]ItemResponse, len(models))
	for i, m := range models {
		r.Items[i].FromModel(m)
	}
}

type MenuSection struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Items       []ItemResponse `json:"items"`
}

type MenuResponse struct {
	Categories []MenuSection `json:"categories"`
}

// FromModels nests items under their category, keeping the order of both inputs.
// Items whose category is not listed are left out.
func (r *MenuResponse) FromModels(categories []model.Category, items []model.Item) {
	r.Categories = make([]MenuSection, len(categories))
	index := make(map[string]int, len(categories))

	for i, c := range categories {
		r.Categories[i] = MenuSection{ID: c.ID, Name: c.Name, Description: c.Description, Items: []ItemResponse{}}
		index[c.ID] = i
	}

	for _, item := range items {
		i, ok := index[item.CategoryID]
		if !ok {
			continue
		}

		var res ItemResponse
		res.FromModel(item)

		r.Categories[i].Items = append(r.Categories[i].Items, res)
	}
}
