// Package amqp consumes payment settled messages and releases the paid table.
package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	handleTimeout  = 30 * time.Second
	resubscribeGap = 2 * time.Second
)

// PaymentSettledMessage is published by the payment provider once an order is paid.
type PaymentSettledMessage struct {
	OrderID string `json:"order_id"`
	TableID string `json:"table_id"`
}

// TableReleaser releases the table bound to a paid order.
type TableReleaser interface {
	Handle(ctx context.Context, command commands.ReleaseTableForOrderCommand) (*table.Table, error)
}

// DeliverySource opens a manual-ack delivery stream.
type DeliverySource interface {
	Consume(ctx context.Context, queue, tag string, prefetch int) (<-chan amqp.Delivery, error)
}

// PaymentConsumer acks handled messages, drops malformed or unknown ones and requeues
// messages that failed for transient reasons.
type PaymentConsumer struct {
	releaser TableReleaser
	logger   *slog.Logger
}

func NewPaymentConsumer(releaser TableReleaser, logger *slog.Logger) *PaymentConsumer {
	return &PaymentConsumer{
		releaser: releaser,
		logger:   logger.With("component", "payment_consumer"),
	}
}

// Run consumes queue until ctx is done, resubscribing when the broker closes the
// delivery channel.
func (c *PaymentConsumer) Run(ctx context.Context, source DeliverySource, queue, tag string, prefetch int) error {
	for {
		deliveries, err := source.Consume(ctx, queue, tag, prefetch)
		if err != nil {
			return fmt.Errorf("subscribe to %s: %w", queue, err)
		}
		c.logger.InfoContext(ctx, "Payment consumer started", "queue", queue, "prefetch", prefetch)

		if done := c.drain(ctx, deliveries); done {
			c.logger.InfoContext(ctx, "Payment consumer stopped", "queue", queue)
			return ctx.Err()
		}

		c.logger.WarnContext(ctx, "Delivery channel closed, resubscribing", "queue", queue)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(resubscribeGap):
		}
	}
}

// drain reports true when ctx ended and false when the channel closed.
func (c *PaymentConsumer) drain(ctx context.Context, deliveries <-chan amqp.Delivery) bool {
	for {
		select {
		case <-ctx.Done():
			return true
		case d, ok := <-deliveries:
			if !ok {
				return false
			}
			c.Handle(ctx, d)
		}
	}
}

// Handle processes one delivery and settles it with the broker.
func (c *PaymentConsumer) Handle(ctx context.Context, d amqp.Delivery) {
	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	log := c.logger.With("delivery_tag", d.DeliveryTag, "message_id", d.MessageId)

	err := c.release(ctx, d.Body)
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			log.ErrorContext(ctx, "Ack failed", "error", ackErr)
		}
	case isPermanent(err):
		log.WarnContext(ctx, "Dropping payment message", "error", err)
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.ErrorContext(ctx, "Nack failed", "error", nackErr)
		}
	default:
		log.ErrorContext(ctx, "Payment message failed, requeueing", "error", err)
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.ErrorContext(ctx, "Nack failed", "error", nackErr)
		}
	}
}

func (c *PaymentConsumer) release(ctx context.Context, body []byte) error {
	var msg PaymentSettledMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("payment message", err)
	}

	orderID, err := kernel.UUIDFromString(msg.OrderID)
	if err != nil {
		return err
	}
	tableID, err := kernel.UUIDFromString(msg.TableID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReleaseTableForOrderCommand(orderID, tableID)
	if err != nil {
		return err
	}

	_, err = c.releaser.Handle(ctx, cmd)
	return err
}

func isPermanent(err error) bool {
	return errs.IsValidation(err) || errors.Is(err, errs.ErrObjectNotFound)
}
