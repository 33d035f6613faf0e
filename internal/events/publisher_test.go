package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelluxury/pkg/kafka"
	"hotelluxury/pkg/logger"
	"hotelluxury/pkg/middleware"
)

type mockProducer struct {
	publishFunc func(ctx context.Context, msg kafka.Message) error
	published   []kafka.Message
}

func (m *mockProducer) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, msg)
	}
	return nil
}

func TestKafkaPublisher_BuildsMessage(t *testing.T) {
	producer := &mockProducer{}
	p := NewKafkaPublisher(producer, "hotel-luxury-api", time.Second, logger.NewNop())

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	p.Publish(ctx, Event{Type: BookingCreated, Key: "b1", Payload: map[string]string{"roomId": "r1"}})

	if len(producer.published) != 1 {
		t.Fatalf("expected 1 message, got %d", len(producer.published))
	}
	msg := producer.published[0]
	if msg.Key != "b1" || msg.GetEventType() != BookingCreated || msg.GetCorrelationID() != "req-1" {
		t.Errorf("unexpected message metadata: key=%q headers=%v", msg.Key, msg.Headers)
	}
	if msg.Headers[kafka.HeaderSource] != "hotel-luxury-api" {
		t.Errorf("source header = %q", msg.Headers[kafka.HeaderSource])
	}

	var payload map[string]string
	if err := msg.DecodeValue(&payload); err != nil || payload["roomId"] != "r1" {
		t.Errorf("payload not encoded: %v %v", payload, err)
	}
}

func TestKafkaPublisher_SurvivesCancelledRequest(t *testing.T) {
	var deadlineSet bool
	producer := &mockProducer{publishFunc: func(ctx context.Context, _ kafka.Message) error {
		_, deadlineSet = ctx.Deadline()
		return ctx.Err()
	}}
	p := NewKafkaPublisher(producer, "api", time.Second, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Publish(ctx, Event{Type: BookingDeleted, Key: "b1", Payload: map[string]any{}})

	if !deadlineSet {
		t.Error("expected publish context to carry its own deadline")
	}
}

func TestKafkaPublisher_SwallowsErrors(t *testing.T) {
	producer := &mockProducer{publishFunc: func(context.Context, kafka.Message) error {
		return errors.New("broker down")
	}}
	p := NewKafkaPublisher(producer, "api", time.Second, logger.NewNop())

	p.Publish(context.Background(), Event{Type: BookingUpdated, Key: "b1", Payload: map[string]any{}})

	if len(producer.published) != 1 {
		t.Errorf("expected one publish attempt, got %d", len(producer.published))
	}
}
