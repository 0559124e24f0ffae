package cache

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantcore/pkg/logger"
	"github.com/dmitrymomot/tenantcore/pkg/pubsub"
)

// Kind discriminates change notifications.
type Kind string

const (
	// KindModify signals that the entity was created or updated; the
	// notification payload is the current state and is written through.
	KindModify Kind = "Modify"

	// KindRemove signals that the entity was deleted; its cache entry is evicted.
	KindRemove Kind = "Remove"
)

// Notification is the change message published once per entity mutation and
// consumed at-least-once by every service instance. The ID exists for log
// correlation only and plays no part in cache semantics.
type Notification[T any] struct {
	ID       uuid.UUID `json:"id"`
	Kind     Kind      `json:"kind"`
	Payload  T         `json:"payload"`
	TenantID string    `json:"tenantId"`
}

// Receiver applies change notifications for one entity type to its cache.
// Handling is idempotent: Set overwrites and Delete ignores absent keys, so
// redelivered notifications converge to the same cache state.
type Receiver[T any] struct {
	cache    *Cache[T]
	identity func(T) string
	log      *slog.Logger
}

// NewReceiver creates a receiver bound to cache. identity extracts the cache
// key of a payload; payloads with a blank identity are dropped as malformed.
func NewReceiver[T any](c *Cache[T], identity func(T) string, log *slog.Logger) *Receiver[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Receiver[T]{cache: c, identity: identity, log: log}
}

// Handle applies one notification. Malformed payloads (blank identity) are
// logged and dropped without error so a bad message cannot wedge the stream.
func (r *Receiver[T]) Handle(ctx context.Context, n Notification[T]) error {
	id := r.identity(n.Payload)
	if id == "" {
		r.log.WarnContext(ctx, "dropping change notification with blank identity",
			logger.NotificationID(n.ID), logger.Kind(string(n.Kind)), logger.TenantID(n.TenantID))
		return nil
	}

	switch n.Kind {
	case KindRemove:
		return r.cache.Delete(ctx, id)
	case KindModify:
		// Write-through: the payload is trusted as current, no re-fetch.
		return r.cache.Set(ctx, id, n.Payload)
	default:
		r.log.WarnContext(ctx, "dropping change notification with unknown kind",
			logger.NotificationID(n.ID), logger.Kind(string(n.Kind)), logger.TenantID(n.TenantID))
		return nil
	}
}

// Announcer publishes change notifications for one entity type after its
// mutations, so every instance's Receiver can keep its cache coherent.
type Announcer[T any] struct {
	pub   pubsub.Publisher
	topic string
}

// NewAnnouncer creates an announcer publishing on topic.
func NewAnnouncer[T any](pub pubsub.Publisher, topic string) *Announcer[T] {
	return &Announcer[T]{pub: pub, topic: topic}
}

// Modified announces that payload was created or updated.
func (a *Announcer[T]) Modified(ctx context.Context, tenantID string, payload T) error {
	return a.publish(ctx, KindModify, tenantID, payload)
}

// Removed announces that payload was deleted.
func (a *Announcer[T]) Removed(ctx context.Context, tenantID string, payload T) error {
	return a.publish(ctx, KindRemove, tenantID, payload)
}

func (a *Announcer[T]) publish(ctx context.Context, kind Kind, tenantID string, payload T) error {
	raw, err := json.Marshal(Notification[T]{
		ID:       uuid.New(),
		Kind:     kind,
		Payload:  payload,
		TenantID: tenantID,
	})
	if err != nil {
		return err
	}
	return a.pub.Publish(ctx, a.topic, raw)
}

// Listen consumes topic from sub and applies every notification to the
// receiver until ctx is cancelled or the subscription channel closes.
// Undecodable messages and handler failures are logged and skipped; the
// cache is self-healing on the next miss.
func Listen[T any](ctx context.Context, sub pubsub.Subscriber, topic string, r *Receiver[T]) error {
	ch, err := sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var n Notification[T]
			if err := json.Unmarshal(msg.Payload, &n); err != nil {
				r.log.WarnContext(ctx, "dropping undecodable change notification",
					logger.Topic(topic), logger.Error(err))
				continue
			}
			if err := r.Handle(ctx, n); err != nil {
				r.log.ErrorContext(ctx, "failed to apply change notification",
					logger.Topic(topic), logger.NotificationID(n.ID), logger.Error(err))
			}
		}
	}
}
