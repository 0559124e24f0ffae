package pubsub

import "errors"

var (
	// ErrBusClosed is returned when publishing or subscribing on a closed bus.
	ErrBusClosed = errors.New("pubsub bus is closed")

	// ErrEmptyTopic is returned when an operation is attempted with an empty topic.
	ErrEmptyTopic = errors.New("empty topic")
)
