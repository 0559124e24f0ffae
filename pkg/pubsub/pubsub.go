package pubsub

import "context"

// Message is a raw payload delivered on a topic.
type Message struct {
	Topic   string
	Payload []byte
}

// Publisher sends messages to a topic.
type Publisher interface {
	// Publish delivers payload to every current subscriber of topic.
	Publish(ctx context.Context, topic string, payload []byte) error
}

// Subscriber receives messages from a topic.
type Subscriber interface {
	// Subscribe returns a channel of messages for topic. The subscription
	// lives until ctx is cancelled, at which point the channel is closed.
	Subscribe(ctx context.Context, topic string) (<-chan Message, error)
}

// Bus combines publishing and subscribing over the same transport.
type Bus interface {
	Publisher
	Subscriber

	// Close shuts down the bus and closes all subscription channels.
	Close() error
}
