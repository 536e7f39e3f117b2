package event

import (
	"context"
	"fmt"
	"resto/config"
	"resto/infras/kafka"
	"resto/infras/otel"
	"resto/internal/domains/booking/model"
	"resto/internal/domains/booking/model/dto"
	"resto/shared/constant"
	"resto/shared/logger"
	"strings"

	"github.com/rs/zerolog"
	kafkaGo "github.com/segmentio/kafka-go"
)

// BookingNotifier turns booking lifecycle events into notifications.
type BookingNotifier struct {
	cfg   *config.Config
	otel  otel.Otel
	kafka kafka.Client
	log   zerolog.Logger
}

func NewBookingNotifier(cfg *config.Config, otel otel.Otel, kafka kafka.Client) *BookingNotifier {
	return &BookingNotifier{
		cfg:   cfg,
		otel:  otel,
		kafka: kafka,
		log:   logger.Component("booking-notifier"),
	}
}

// Run consumes the booking topic until ctx is cancelled.
func (n *BookingNotifier) Run(ctx context.Context) {
	n.log.Info().Str("topic", n.cfg.Kafka.Topics.Booking).Msg("Booking notifier started")

	n.kafka.Consume(ctx, n.cfg.Kafka.ConsumerGroup, n.cfg.Kafka.Topics.Booking, n.Handle)

	n.log.Info().Msg("Booking notifier stopped")
}

func (n *BookingNotifier) Handle(ctx context.Context, message kafkaGo.Message) {
	_, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingNotifier.Handle")
	defer scope.End()

	event, err := kafka.Decode[dto.Event](message)
	if err != nil {
		scope.TraceError(err)

		return
	}

	scope.SetAttributes(map[string]any{
		"booking.id":     event.BookingID,
		"booking.type":   event.Type,
		"booking.status": event.Status,
	})

	text, ok := Notification(event)
	if !ok {
		n.log.Warn().Str("type", event.Type).Str("booking_id", event.BookingID).Msg("unknown booking event type")

		return
	}

	n.log.Info().
		Str("type", event.Type).
		Str("booking_id", event.BookingID).
		Str("customer_phone", event.CustomerPhone).
		Msg(text)
}

// Notification renders the message sent for a booking event.
func Notification(event dto.Event) (string, bool) {
	hall := event.HallName
	if hall == "" {
		hall = event.HallID
	}

	when := fmt.Sprintf("%s (%s)", event.BookingDate, strings.Join(event.TimeSlots, ", "))

	switch event.Type {
	case model.EventCreated:
		return fmt.Sprintf("New booking request from %s for %s on %s", event.CustomerName, hall, when), true
	case model.EventApproved:
		return fmt.Sprintf("Booking for %s at %s on %s has been approved", event.CustomerName, hall, when), true
	case model.EventRejected:
		return fmt.Sprintf("Booking for %s at %s on %s has been rejected", event.CustomerName, hall, when), true
	default:
		return "", false
	}
}
