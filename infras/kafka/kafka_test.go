package kafka_test

import (
	"resto/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	BookingID string   `json:"booking_id"`
	Slots     []string `json:"slots"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    payload
		wantErr bool
	}{
		{
			name:  "json object",
			value: `{"booking_id":"b-1","slots":["morning","night"]}`,
			want:  payload{BookingID: "b-1", Slots: []string{"morning", "night"}},
		},
		{
			name:  "unknown fields ignored",
			value: `{"booking_id":"b-2","extra":true}`,
			want:  payload{BookingID: "b-2"},
		},
		{
			name:    "malformed",
			value:   `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := kafka.Decode[payload](kafkaGo.Message{Key: []byte("k"), Value: []byte(tt.value)})

			if tt.wantErr {
				assert.ErrorContains(t, err, `"k"`)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
