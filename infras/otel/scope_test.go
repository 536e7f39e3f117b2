package otel_test

import (
	"errors"
	"resto/infras/otel"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestAttribute(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  attribute.Value
	}{
		{name: "string", value: "hall-a", want: attribute.StringValue("hall-a")},
		{name: "int", value: 3, want: attribute.IntValue(3)},
		{name: "float", value: 1250.5, want: attribute.Float64Value(1250.5)},
		{name: "bool", value: true, want: attribute.BoolValue(true)},
		{name: "slots", value: []string{"evening", "night"}, want: attribute.StringSliceValue([]string{"evening", "night"})},
		{name: "time", value: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), want: attribute.StringValue("2026-11-02T00:00:00Z")},
		{name: "error falls back to text", value: errors.New("boom"), want: attribute.StringValue("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := otel.Attribute("booking.field", tt.value)

			assert.Equal(t, attribute.Key("booking.field"), kv.Key)
			assert.Equal(t, tt.want, kv.Value)
		})
	}
}
