package kafka_config

import "time"

const (
	// Empty means event publishing is off.
	DefaultKafkaBrokers = ""

	DefaultBookingTopic    = "hotel.bookings"
	DefaultBookingDLQTopic = ""

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // Require all replicas
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false
	DefaultPublishTimeout       = 5 * time.Second

	DefaultEnableMiddleware = true
)
