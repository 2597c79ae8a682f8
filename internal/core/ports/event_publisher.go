package ports

import (
	"context"

	"restaurant/internal/core/domain/model/event"
)

// EventPublisher delivers an outbox event to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, e event.Event) error
}
