package pubsub

import (
	"context"
	"sync"
)

// defaultBufferSize is the per-subscriber channel buffer of the memory bus.
const defaultBufferSize = 64

// MemoryBus is an in-process Bus for tests and single-instance deployments.
// Messages are delivered to subscribers of the same process only. When a
// subscriber's buffer is full the message is dropped for that subscriber;
// publishing never blocks.
type MemoryBus struct {
	mu     sync.RWMutex
	subs   map[string][]*memorySub
	closed bool
}

type memorySub struct {
	ch     chan Message
	mu     sync.Mutex
	closed bool
}

func (s *memorySub) send(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- msg:
	default:
		// Slow consumer, drop.
	}
}

func (s *memorySub) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// NewMemoryBus creates an empty in-memory bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string][]*memorySub)}
}

// Publish delivers payload to every current subscriber of topic.
func (b *MemoryBus) Publish(ctx context.Context, topic string, payload []byte) error {
	if topic == "" {
		return ErrEmptyTopic
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}
	for _, sub := range b.subs[topic] {
		sub.send(Message{Topic: topic, Payload: payload})
	}
	return nil
}

// Subscribe registers a subscriber for topic. The subscription is removed and
// its channel closed when ctx is cancelled or the bus is closed.
func (b *MemoryBus) Subscribe(ctx context.Context, topic string) (<-chan Message, error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBusClosed
	}

	sub := &memorySub{ch: make(chan Message, defaultBufferSize)}
	b.subs[topic] = append(b.subs[topic], sub)

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			b.unsubscribe(topic, sub)
		}()
	}

	return sub.ch, nil
}

func (b *MemoryBus) unsubscribe(topic string, sub *memorySub) {
	b.mu.Lock()
	subs := b.subs[topic]
	for i, s := range subs {
		if s == sub {
			b.subs[topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	b.mu.Unlock()
	sub.close()
}

// Close shuts down the bus and closes all subscription channels.
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	for _, subs := range b.subs {
		for _, sub := range subs {
			sub.close()
		}
	}
	clear(b.subs)
	b.mu.Unlock()
	return nil
}
