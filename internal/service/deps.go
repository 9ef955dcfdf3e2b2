package service

import (
	"context"
	"time"

	"github.com/toomajBandad/MoonShop-Backend/pkg/events"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type TokenIssuer interface {
	Issue(subject, role string) (string, time.Time, error)
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type ProductCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}

// publish never fails the caller; a lost event is logged and dropped.
func publish(ctx context.Context, p Publisher, topic, eventType, entityID, userID string, data map[string]any) {
	if p == nil {
		return
	}
	ev := events.Event{
		Type:       eventType,
		EntityID:   entityID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
	if err := p.PublishEvent(ctx, topic, entityID, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "topic", topic, "type", eventType, "error", err)
	}
}
