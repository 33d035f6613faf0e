package kafka_middleware

import (
	"context"
	"time"

	"hotelluxury/pkg/kafka"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

type ProducerMetrics struct {
	published *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

func NewProducerMetrics(reg prometheus.Registerer) *ProducerMetrics {
	m := &ProducerMetrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel",
			Subsystem: "kafka",
			Name:      "messages_published_total",
			Help:      "Messages handed to the Kafka writer, by event type and result.",
		}, []string{"event_type", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hotel",
			Subsystem: "kafka",
			Name:      "publish_duration_seconds",
			Help:      "Time spent publishing a single message.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),
	}
	reg.MustRegister(m.published, m.duration)
	return m
}

func (m *ProducerMetrics) Middleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)

		eventType := msg.GetEventType()
		m.duration.WithLabelValues(eventType).Observe(time.Since(start).Seconds())

		result := resultSuccess
		if err != nil {
			result = resultFailure
		}
		m.published.WithLabelValues(eventType, result).Inc()
		return err
	}
}
