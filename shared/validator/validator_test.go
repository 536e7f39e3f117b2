package validator_test

import (
	"net/http"
	"resto/shared/failure"
	"resto/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type bookingForm struct {
	Name  string   `json:"customer_name" validate:"required,min=2"`
	Email string   `json:"customer_email" validate:"omitempty,email"`
	Date  string   `json:"booking_date"  validate:"required,dateonly"`
	Slots []string `json:"time_slots"    validate:"required,min=1,unique,dive,timeslot"`
}

type uploadForm struct {
	ContentType string `json:"content_type" validate:"required,mimetypes=image/png image/jpeg"`
	Size        int64  `json:"size"         validate:"gt=0,maxfilesize=1"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    bookingForm
		wantMsg string
	}{
		{
			name: "valid",
			data: bookingForm{Name: "Asha", Date: "2025-03-01", Slots: []string{"morning", "night"}},
		},
		{
			name:    "missing name uses json field name",
			data:    bookingForm{Date: "2025-03-01", Slots: []string{"morning"}},
			wantMsg: "customer_name is required",
		},
		{
			name:    "bad date",
			data:    bookingForm{Name: "Asha", Date: "01/03/2025", Slots: []string{"morning"}},
			wantMsg: "booking_date must be a date in YYYY-MM-DD format",
		},
		{
			name:    "unknown slot",
			data:    bookingForm{Name: "Asha", Date: "2025-03-01", Slots: []string{"brunch"}},
			wantMsg: "must be one of morning evening night full_day",
		},
		{
			name:    "duplicate slots",
			data:    bookingForm{Name: "Asha", Date: "2025-03-01", Slots: []string{"night", "night"}},
			wantMsg: "time_slots must not contain duplicates",
		},
		{
			name:    "invalid email",
			data:    bookingForm{Name: "Asha", Email: "nope", Date: "2025-03-01", Slots: []string{"night"}},
			wantMsg: "customer_email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateStruct_FileRules(t *testing.T) {
	tests := []struct {
		name    string
		data    uploadForm
		wantErr bool
	}{
		{name: "png within limit", data: uploadForm{ContentType: "image/png", Size: 1024}},
		{name: "content type with parameters", data: uploadForm{ContentType: "image/jpeg; charset=binary", Size: 1024}},
		{name: "disallowed type", data: uploadForm{ContentType: "application/pdf", Size: 1024}, wantErr: true},
		{name: "too large", data: uploadForm{ContentType: "image/png", Size: 2 * 1024 * 1024}, wantErr: true},
		{name: "empty file", data: uploadForm{ContentType: "image/png"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "date ok", field: "2025-12-31", tag: "dateonly"},
		{name: "date invalid", field: "2025-13-01", tag: "dateonly", wantErr: true},
		{name: "uuid ok", field: "550e8400-e29b-41d4-a716-446655440000", tag: "uuid"},
		{name: "uuid invalid", field: "hall-1", tag: "uuid", wantErr: true},
		{name: "rating range", field: 6, tag: "gte=1,lte=5", wantErr: true},
		{name: "slot ok", field: "full_day", tag: "timeslot"},
		{name: "slot unknown", field: "afternoon", tag: "timeslot", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid body", body: `{"customer_name":"Asha","booking_date":"2025-03-01","time_slots":["evening"]}`},
		{name: "malformed body", body: `{"customer_name":`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form bookingForm

			err := validator.Validate(strings.NewReader(tt.body), &form)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, []string{"evening"}, form.Slots)
			}
		})
	}
}

func TestValidateStruct_UnknownRuleMessage(t *testing.T) {
	data := struct {
		Code string `json:"code" validate:"alpha"`
	}{Code: "A1"}

	err := validator.ValidateStruct(&data)

	assert.EqualError(t, err, "code is invalid")
}
