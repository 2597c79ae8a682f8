package commands

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
)

type (
	// OutboxUoW manages transactions for relaying outbox events.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// RelayOutboxCommandHandler publishes pending events in insertion order and marks the
// published prefix as sent. Delivery is at least once: an event is re-published when
// marking it sent fails after the broker accepted it.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	now        Clock
}

func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.EventPublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        systemClock,
	}
}

// Handle returns the number of events published. A publish failure stops the batch;
// events published before it are still marked sent.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, command RelayOutboxCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()

	pending, err := outbox.GetPending(ctx, command.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	sent := make([]kernel.UUID, 0, len(pending))
	var publishErr error
	for _, e := range pending {
		if publishErr = h.publisher.Publish(ctx, e); publishErr != nil {
			publishErr = fmt.Errorf("publish %s %s: %w", e.Kind(), e.ID(), publishErr)
			break
		}
		sent = append(sent, e.ID())
	}

	if len(sent) > 0 {
		if err = outbox.MarkSent(ctx, sent, h.now()); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(sent), publishErr
}
