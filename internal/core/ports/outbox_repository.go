package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"
)

// OutboxRepository is the transactional outbox. Command handlers add events through
// the unit of work that also writes the state change; the relay job reads pending
// events in insertion order and marks them sent once published.
type OutboxRepository interface {
	Add(ctx context.Context, events ...event.Event) error
	GetPending(ctx context.Context, limit int) ([]event.Event, error)
	MarkSent(ctx context.Context, ids []kernel.UUID, at time.Time) error
}
