package kafka_middleware

import (
	"context"
	"errors"
	"testing"

	"hotelluxury/pkg/kafka"
	"hotelluxury/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestProducerMetrics_CountsResults(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewProducerMetrics(reg)
	mw := m.Middleware()

	msg := kafka.NewMessage().WithKey("booking-1").WithEventType("booking.created").WithValue("v").Build()

	_ = mw(context.Background(), msg, func(context.Context, kafka.Message) error { return nil })
	_ = mw(context.Background(), msg, func(context.Context, kafka.Message) error { return errors.New("down") })
	_ = mw(context.Background(), msg, func(context.Context, kafka.Message) error { return nil })

	if got := testutil.ToFloat64(m.published.WithLabelValues("booking.created", resultSuccess)); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.published.WithLabelValues("booking.created", resultFailure)); got != 1 {
		t.Errorf("failure count = %v, want 1", got)
	}
}

func TestLoggingProducerMiddleware_PassesErrorThrough(t *testing.T) {
	mw := LoggingProducerMiddleware(logger.NewNop())
	want := errors.New("down")

	msg := kafka.NewMessage().WithKey("booking-1").WithValue("v").Build()
	if err := mw(context.Background(), msg, func(context.Context, kafka.Message) error { return want }); !errors.Is(err, want) {
		t.Errorf("expected error to pass through, got %v", err)
	}
}
