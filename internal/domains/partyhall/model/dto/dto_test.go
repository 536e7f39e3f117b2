package dto_test

import (
	"testing"
	"time"

	"resto/internal/domains/partyhall/model"
	"resto/internal/domains/partyhall/model/dto"
	gModel "resto/shared/model"
	"resto/shared/validator"

	"github.com/stretchr/testify/assert"
)

func TestCreatePartyHallRequest_ToModel(t *testing.T) {
	inactive := false

	tests := []struct {
		name       string
		req        dto.CreatePartyHallRequest
		wantActive bool
	}{
		{
			name:       "active by default",
			req:        dto.CreatePartyHallRequest{Name: "Garden Hall", Location: "Level 2", Phone: "+62 21 555", CapacityMin: 20, CapacityMax: 120},
			wantActive: true,
		},
		{
			name:       "explicitly inactive",
			req:        dto.CreatePartyHallRequest{Name: "Roof Deck", Location: "Rooftop", Phone: "+62 21 556", IsActive: &inactive},
			wantActive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hall := tt.req.ToModel("admin-1")

			assert.NotEmpty(t, hall.ID)
			assert.Equal(t, tt.req.Name, hall.Name)
			assert.Equal(t, tt.req.CapacityMax, hall.CapacityMax)
			assert.Equal(t, tt.wantActive, hall.IsActive)
			assert.Equal(t, "admin-1", hall.CreatedBy)
			assert.Equal(t, "admin-1", hall.ModifiedBy)
			assert.False(t, hall.CreatedAt.IsZero())
		})
	}
}

func TestCreatePartyHallRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreatePartyHallRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  dto.CreatePartyHallRequest{Name: "Garden Hall", Location: "Level 2", Phone: "555", CapacityMin: 10, CapacityMax: 50},
		},
		{
			name:    "max below min",
			req:     dto.CreatePartyHallRequest{Name: "Garden Hall", Location: "Level 2", Phone: "555", CapacityMin: 60, CapacityMax: 50},
			wantErr: true,
		},
		{
			name:    "missing location",
			req:     dto.CreatePartyHallRequest{Name: "Garden Hall", Phone: "555"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdatePartyHallRequest_CapacityRange(t *testing.T) {
	current := model.PartyHall{CapacityMin: 10, CapacityMax: 100}
	newMax := 40

	req := dto.UpdatePartyHallRequest{CapacityMax: &newMax}
	minGuests, maxGuests := req.CapacityRange(current)

	assert.Equal(t, 10, minGuests)
	assert.Equal(t, 40, maxGuests)
}

func TestGetPartyHallsResponse_FromModels(t *testing.T) {
	now := time.Now()
	halls := []model.PartyHall{
		{ID: "h1", Name: "Garden Hall", DisplayOrder: 1, IsActive: true, Metadata: gModel.NewMetadata("admin", now)},
		{ID: "h2", Name: "Roof Deck", DisplayOrder: 2, IsActive: true, Metadata: gModel.NewMetadata("admin", now)},
	}

	var res dto.GetPartyHallsResponse
	res.FromModels(halls, 12, 10)

	assert.Len(t, res.PartyHalls, 2)
	assert.Equal(t, "Roof Deck", res.PartyHalls[1].Name)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestPartyHall_Accommodates(t *testing.T) {
	hall := model.PartyHall{CapacityMin: 10, CapacityMax: 50}

	assert.True(t, hall.Accommodates(10))
	assert.True(t, hall.Accommodates(50))
	assert.False(t, hall.Accommodates(51))
	assert.False(t, hall.Accommodates(5))
	assert.True(t, model.PartyHall{}.Accommodates(500))
}
