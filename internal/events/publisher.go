package events

import (
	"context"
	"time"

	"hotelluxury/pkg/kafka"
	"hotelluxury/pkg/logger"
	"hotelluxury/pkg/middleware"
)

const (
	BookingCreated    = "booking.created"
	BookingUpdated    = "booking.updated"
	BookingDeleted    = "booking.deleted"
	RoomStatusUpdated = "room.status_updated"

	SchemaVersion = "1"
)

type Event struct {
	Type    string
	Key     string
	Payload any
}

// Publisher emits change events. Implementations never fail the caller;
// delivery problems are logged.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type messageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaPublisher struct {
	producer messageProducer
	source   string
	timeout  time.Duration
	log      *logger.Logger
}

func NewKafkaPublisher(producer messageProducer, source string, timeout time.Duration, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		source:   source,
		timeout:  timeout,
		log:      log,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	requestID := middleware.RequestIDFromContext(ctx)

	// The response may already be on its way when the request context is
	// cancelled, so the write gets its own deadline.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	msg := kafka.NewMessage().
		WithKey(event.Key).
		WithEventType(event.Type).
		WithSource(p.source).
		WithSchemaVersion(SchemaVersion).
		WithCorrelationID(requestID).
		WithValue(event.Payload).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish event",
			"event_type", event.Type,
			"key", event.Key,
			"request_id", requestID,
			"error", err,
		)
	}
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
