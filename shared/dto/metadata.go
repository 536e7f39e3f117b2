package dto

import (
	"resto/shared/constant"
	"resto/shared/model"
	"resto/shared/timezone"
	"time"
)

// Metadata is the audit block of admin responses, with timestamps in the application zone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func NewMetadata(m model.Metadata) Metadata {
	return Metadata{
		CreatedAt:  formatTime(m.CreatedAt),
		ModifiedAt: formatTime(m.ModifiedAt),
		CreatedBy:  m.CreatedBy,
		ModifiedBy: m.ModifiedBy,
	}
}

func (m *Metadata) FromModel(model model.Metadata) {
	*m = NewMetadata(model)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}
