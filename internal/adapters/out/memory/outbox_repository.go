package memory

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"
)

// OutboxRepository implements ports.OutboxRepository as an append-only list.
type OutboxRepository struct {
	repo
}

func (r *OutboxRepository) Add(ctx context.Context, events ...event.Event) error {
	return r.with(ctx, func(st *state) error {
		for _, e := range events {
			st.outbox = append(st.outbox, outboxRecord{event: e})
		}
		return nil
	})
}

func (r *OutboxRepository) GetPending(ctx context.Context, limit int) ([]event.Event, error) {
	pending := make([]event.Event, 0)
	err := r.with(ctx, func(st *state) error {
		for _, rec := range st.outbox {
			if len(pending) >= limit {
				break
			}
			if rec.sentAt == nil {
				pending = append(pending, rec.event)
			}
		}
		return nil
	})
	return pending, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	sent := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		sent[id] = struct{}{}
	}

	return r.with(ctx, func(st *state) error {
		for i := range st.outbox {
			if _, ok := sent[st.outbox[i].event.ID()]; ok && st.outbox[i].sentAt == nil {
				sentAt := at
				st.outbox[i].sentAt = &sentAt
			}
		}
		return nil
	})
}
