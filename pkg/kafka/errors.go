package kafka

import "errors"

var (
	ErrProducerClosed = errors.New("kafka producer is closed")

	ErrEmptyKey = errors.New("message key cannot be empty")

	// ErrEmptyValue is also what a payload that failed to encode ends up as.
	ErrEmptyValue = errors.New("message value cannot be empty")
)
