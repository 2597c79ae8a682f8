package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/domain/model/event"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// Channel is the publishing side of *amqp.Channel.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// ChannelSource hands out a live channel, reconnecting if needed.
type ChannelSource interface {
	PublishChannel(ctx context.Context) (Channel, error)
}

// Envelope is the JSON body of every published event.
type Envelope struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// EventPublisher implements ports.EventPublisher. The routing key is the event kind,
// so consumers bind with patterns such as "dish.*" or "order.#".
type EventPublisher struct {
	source   ChannelSource
	exchange string
	logger   *slog.Logger
}

func NewEventPublisher(source ChannelSource, exchange string, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		source:   source,
		exchange: exchange,
		logger:   logger.With("component", "event_publisher"),
	}
}

func (p *EventPublisher) Publish(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e.Payload())
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", e.Kind(), err)
	}

	body, err := json.Marshal(Envelope{
		ID:          e.ID().String(),
		Kind:        string(e.Kind()),
		AggregateID: e.AggregateID().String(),
		OccurredAt:  e.OccurredAt(),
		Payload:     payload,
	})
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", e.Kind(), err)
	}

	ch, err := p.source.PublishChannel(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	routingKey := string(e.Kind())
	err = ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID().String(),
		Type:         routingKey,
		Timestamp:    e.OccurredAt(),
		Body:         body,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Event publish failed",
			"exchange", p.exchange, "routing_key", routingKey, "event_id", e.ID().String(), "error", err)
		return fmt.Errorf("publish to %s: %w", p.exchange, err)
	}

	p.logger.DebugContext(ctx, "Event published",
		"exchange", p.exchange, "routing_key", routingKey, "event_id", e.ID().String(), "size", len(body))
	return nil
}
