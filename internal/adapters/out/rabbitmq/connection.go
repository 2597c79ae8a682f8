// Package rabbitmq connects to RabbitMQ and publishes relayed outbox events to a topic
// exchange, one routing key per event kind.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Topology names the broker objects the service declares on connect.
type Topology struct {
	// EventsExchange is the durable topic exchange receiving outbox events.
	EventsExchange string
	// PaymentsQueue receives payment settled messages from the payment provider.
	PaymentsQueue string
	// PaymentsRoutingKey binds PaymentsQueue to EventsExchange.
	PaymentsRoutingKey string
}

const dialAttempts = 5

// Connection owns one AMQP connection and channel and redials when either is closed.
type Connection struct {
	url      string
	topology Topology
	logger   *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Dial connects with linear backoff and declares the topology.
func Dial(ctx context.Context, url string, topology Topology, logger *slog.Logger) (*Connection, error) {
	c := &Connection{
		url:      url,
		topology: topology,
		logger:   logger.With("component", "rabbitmq"),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Connection) connect(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		if err = c.open(); err == nil {
			return nil
		}
		if attempt == dialAttempts {
			break
		}

		wait := time.Duration(attempt) * 2 * time.Second
		c.logger.WarnContext(ctx, "RabbitMQ connection failed, retrying", "attempt", attempt, "retry_in", wait, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("connect to RabbitMQ after %d attempts: %w", dialAttempts, err)
}

func (c *Connection) open() error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	if err = declare(ch, c.topology); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	c.conn = conn
	c.channel = ch
	return nil
}

func declare(ch *amqp.Channel, t Topology) error {
	if err := ch.ExchangeDeclare(t.EventsExchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", t.EventsExchange, err)
	}

	if t.PaymentsQueue == "" {
		return nil
	}
	if _, err := ch.QueueDeclare(t.PaymentsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", t.PaymentsQueue, err)
	}
	if err := ch.QueueBind(t.PaymentsQueue, t.PaymentsRoutingKey, t.EventsExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s to %s: %w", t.PaymentsQueue, t.PaymentsRoutingKey, err)
	}
	return nil
}

// live returns the current channel, redialing first when the connection dropped.
func (c *Connection) live(ctx context.Context) (*amqp.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() || c.channel == nil || c.channel.IsClosed() {
		c.closeLocked()
		if err := c.connect(ctx); err != nil {
			return nil, err
		}
	}
	return c.channel, nil
}

// PublishChannel implements ChannelSource.
func (c *Connection) PublishChannel(ctx context.Context) (Channel, error) {
	ch, err := c.live(ctx)
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// Consume starts a manual-ack consumer on queue with the given prefetch.
func (c *Connection) Consume(ctx context.Context, queue, tag string, prefetch int) (<-chan amqp.Delivery, error) {
	ch, err := c.live(ctx)
	if err != nil {
		return nil, err
	}

	if err = ch.Qos(prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("set QoS: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queue, tag, false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", queue, err)
	}
	return deliveries, nil
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Connection) closeLocked() error {
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	if errors.Is(err, amqp.ErrClosed) {
		return nil
	}
	return err
}
