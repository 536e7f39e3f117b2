package dto

import (
	"resto/internal/domains/partyhall/model"
	"resto/shared"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
)

type CreatePartyHallRequest struct {
	Name         string  `json:"name"          validate:"required,min=2,max=100"`
	Location     string  `json:"location"      validate:"required,max=255"`
	Phone        string  `json:"phone"         validate:"required,max=30"`
	MapsURL      *string `json:"maps_url"      validate:"omitempty,url"`
	ImageURL     *string `json:"image_url"     validate:"omitempty,url"`
	CapacityMin  int     `json:"capacity_min"  validate:"gte=0"`
	CapacityMax  int     `json:"capacity_max"  validate:"gtefield=CapacityMin"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
}

func (c *CreatePartyHallRequest) ToModel(user string) model.PartyHall {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.PartyHall{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Location:     c.Location,
		Phone:        c.Phone,
		MapsURL:      c.MapsURL,
		ImageURL:     c.ImageURL,
		CapacityMin:  c.CapacityMin,
		CapacityMax:  c.CapacityMax,
		IsActive:     active,
		DisplayOrder: c.DisplayOrder,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdatePartyHallRequest struct {
	Name         string  `db:"name"          json:"name"          validate:"omitempty,min=2,max=100"`
	Location     string  `db:"location"      json:"location"      validate:"omitempty,max=255"`
	Phone        string  `db:"phone"         json:"phone"         validate:"omitempty,max=30"`
	MapsURL      *string `db:"maps_url"      json:"maps_url"      validate:"omitempty,url"`
	ImageURL     *string `db:"image_url"     json:"image_url"     validate:"omitempty,url"`
	CapacityMin  *int    `db:"capacity_min"  json:"capacity_min"  validate:"omitempty,gte=0"`
	CapacityMax  *int    `db:"capacity_max"  json:"capacity_max"  validate:"omitempty,gte=0"`
	IsActive     *bool   `db:"is_active"     json:"is_active"`
	DisplayOrder *int    `db:"display_order" json:"display_order" validate:"omitempty,gte=0"`
}

// CapacityRange returns the range the hall would have after applying the update.
func (u *UpdatePartyHallRequest) CapacityRange(current model.PartyHall) (minGuests, maxGuests int) {
	minGuests, maxGuests = current.CapacityMin, current.CapacityMax

	if u.CapacityMin != nil {
		minGuests = *u.CapacityMin
	}

	if u.CapacityMax != nil {
		maxGuests = *u.CapacityMax
	}

	return minGuests, maxGuests
}

type PartyHallResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Phone        string  `json:"phone"`
	MapsURL      *string `json:"maps_url"`
	ImageURL     *string `json:"image_url"`
	CapacityMin  int     `json:"capacity_min"`
	CapacityMax  int     `json:"capacity_max"`
	IsActive     bool    `json:"is_active"`
	DisplayOrder int     `json:"display_order"`
	gDto.Metadata
}

func (r *PartyHallResponse) FromModel(m model.PartyHall) {
	r.ID = m.ID
	r.Name = m.Name
	r.Location = m.Location
	r.Phone = m.Phone
	r.MapsURL = m.MapsURL
	r.ImageURL = m.ImageURL
	r.CapacityMin = m.CapacityMin
	r.CapacityMax = m.CapacityMax
	r.IsActive = m.IsActive
	r.DisplayOrder = m.DisplayOrder
	r.Metadata.FromModel(m.Metadata)
}

type GetPartyHallsResponse struct {
	PartyHalls []PartyHallResponse `json:"party_halls"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetPartyHallsResponse) FromModels(models []model.PartyHall, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.PartyHalls = make([]PartyHallResponse, len(models))
	for i, m := range models {
		r.PartyHalls[i].FromModel(m)
	}
}
