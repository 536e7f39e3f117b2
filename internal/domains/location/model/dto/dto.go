package dto

import (
	"resto/internal/domains/location/model"
	"resto/shared"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
)

type CreateLocationRequest struct {
	Name         string  `json:"name"          validate:"required,min=2,max=100"`
	Address      string  `json:"address"       validate:"required,max=500"`
	City         string  `json:"city"          validate:"required,max=100"`
	Phone        *string `json:"phone"         validate:"omitempty,max=30"`
	Email        *string `json:"email"         validate:"omitempty,email"`
	MapURL       *string `json:"map_url"       validate:"omitempty,url"`
	OpeningTime  *string `json:"opening_time"  validate:"omitempty,datetime=15:04"`
	ClosingTime  *string `json:"closing_time"  validate:"omitempty,datetime=15:04"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
}

func (c *CreateLocationRequest) ToModel(user string) model.Location {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.Location{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Address:      c.Address,
		City:         c.City,
		Phone:        c.Phone,
		Email:        c.Email,
		MapURL:       c.MapURL,
		OpeningTime:  c.OpeningTime,
		ClosingTime:  c.ClosingTime,
		IsActive:     active,
		DisplayOrder: c.DisplayOrder,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateLocationRequest struct {
	Name         string  `db:"name"          json:"name"          validate:"omitempty,min=2,max=100"`
	Address      string  `db:"address"       json:"address"       validate:"omitempty,max=500"`
	City         string  `db:"city"          json:"city"          validate:"omitempty,max=100"`
	Phone        *string `db:"phone"         json:"phone"         validate:"omitempty,max=30"`
	Email        *string `db:"email"         json:"email"         validate:"omitempty,email"`
	MapURL       *string `db:"map_url"       json:"map_url"       validate:"omitempty,url"`
	OpeningTime  *string `db:"opening_time"  json:"opening_time"  validate:"omitempty,datetime=15:04"`
	ClosingTime  *string `db:"closing_time"  json:"closing_time"  validate:"omitempty,datetime=15:04"`
	IsActive     *bool   `db:"is_active"     json:"is_active"`
	DisplayOrder *int    `db:"display_order" json:"display_order" validate:"omitempty,gte=0"`
}

type LocationResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	MapURL       *string `json:"map_url"`
	OpeningTime  *string `json:"opening_time"`
	ClosingTime  *string `json:"closing_time"`
	IsActive     bool    `json:"is_active"`
	DisplayOrder int     `json:"display_order"`
	gDto.Metadata
}

func (r *LocationResponse) FromModel(m model.Location) {
	r.ID = m.ID
	r.Name = m.Name
	r.Address = m.Address
	r.City = m.City
	r.Phone = m.Phone
	r.Email = m.Email
	r.MapURL = m.MapURL
	r.OpeningTime = m.OpeningTime
	r.ClosingTime = m.ClosingTime
	r.IsActive = m.IsActive
	r.DisplayOrder = m.DisplayOrder
	r.Metadata.FromModel(m.Metadata)
}

type GetLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetLocationsResponse) FromModels(models []model.Location, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Locations = make([]LocationResponse, len(models))
	for i, m := range models {
		r.Locations[i].FromModel(m)
	}
}
