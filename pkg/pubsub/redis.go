package pubsub

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBus implements Bus over Redis pub/sub channels. Every service instance
// subscribed to a topic receives every message published to it, which is
// exactly the fan-out the cache invalidation layer needs.
type RedisBus struct {
	db redis.UniversalClient

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
	cancel []context.CancelFunc
}

// NewRedisBus wraps an existing Redis client. The caller owns the client's
// lifecycle; Close only tears down subscriptions.
func NewRedisBus(client redis.UniversalClient) *RedisBus {
	return &RedisBus{db: client}
}

// Publish delivers payload to every subscriber of topic across all processes.
func (b *RedisBus) Publish(ctx context.Context, topic string, payload []byte) error {
	if topic == "" {
		return ErrEmptyTopic
	}
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrBusClosed
	}
	return b.db.Publish(ctx, topic, payload).Err()
}

// Subscribe opens a Redis subscription for topic and pumps messages into the
// returned channel until ctx is cancelled or the bus is closed.
func (b *RedisBus) Subscribe(ctx context.Context, topic string) (<-chan Message, error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBusClosed
	}
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = append(b.cancel, cancel)
	b.wg.Add(1)
	b.mu.Unlock()

	sub := b.db.Subscribe(ctx, topic)
	// Force the subscription to be established before returning so callers
	// do not miss messages published right after Subscribe.
	if _, err := sub.Receive(ctx); err != nil {
		cancel()
		b.wg.Done()
		_ = sub.Close()
		return nil, err
	}

	out := make(chan Message)
	go func() {
		defer b.wg.Done()
		defer close(out)
		defer sub.Close()

		in := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- Message{Topic: msg.Channel, Payload: []byte(msg.Payload)}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Close cancels every active subscription and waits for their pumps to stop.
func (b *RedisBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	cancels := b.cancel
	b.cancel = nil
	b.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	b.wg.Wait()
	return nil
}
