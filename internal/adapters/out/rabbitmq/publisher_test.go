package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"restaurant/internal/adapters/out/rabbitmq"
	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct{ mock.Mock }

func (m *MockChannel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

type staticSource struct {
	ch  rabbitmq.Channel
	err error
}

func (s staticSource) PublishChannel(context.Context) (rabbitmq.Channel, error) {
	return s.ch, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEventPublisher_RoutesByKind(t *testing.T) {
	at := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	orderID, dishID := kernel.NewUUID(), kernel.NewUUID()
	e := event.NewDishPrepared(orderID, dishID, at)

	var sent amqp.Publishing
	ch := new(MockChannel)
	ch.On("PublishWithContext", mock.Anything, "restaurant.events", "dish.prepared", false, false, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(5).(amqp.Publishing) }).
		Return(nil)

	publisher := rabbitmq.NewEventPublisher(staticSource{ch: ch}, "restaurant.events", discardLogger())
	require.NoError(t, publisher.Publish(t.Context(), e))

	assert.Equal(t, "application/json", sent.ContentType)
	assert.Equal(t, amqp.Persistent, sent.DeliveryMode)
	assert.Equal(t, e.ID().String(), sent.MessageId)

	var envelope rabbitmq.Envelope
	require.NoError(t, json.Unmarshal(sent.Body, &envelope))
	assert.Equal(t, "dish.prepared", envelope.Kind)
	assert.Equal(t, orderID.String(), envelope.AggregateID)
	assert.True(t, envelope.OccurredAt.Equal(at))
	assert.JSONEq(t, `{"order_id":"`+orderID.String()+`","dish_id":"`+dishID.String()+`"}`, string(envelope.Payload))
}

func TestEventPublisher_PassesRawPayloadThrough(t *testing.T) {
	raw := json.RawMessage(`{"table_id":"t-1","number":4}`)
	e := event.Restore(kernel.NewUUID(), event.TableReleased, kernel.NewUUID(), time.Now().UTC(), raw)

	var sent amqp.Publishing
	ch := new(MockChannel)
	ch.On("PublishWithContext", mock.Anything, "ex", "table.released", false, false, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(5).(amqp.Publishing) }).
		Return(nil)

	require.NoError(t, rabbitmq.NewEventPublisher(staticSource{ch: ch}, "ex", discardLogger()).Publish(t.Context(), e))

	var envelope rabbitmq.Envelope
	require.NoError(t, json.Unmarshal(sent.Body, &envelope))
	assert.JSONEq(t, string(raw), string(envelope.Payload))
}

func TestEventPublisher_Errors(t *testing.T) {
	e := event.NewDishPrepared(kernel.NewUUID(), kernel.NewUUID(), time.Now())

	dialErr := errors.New("connection refused")
	err := rabbitmq.NewEventPublisher(staticSource{err: dialErr}, "ex", discardLogger()).Publish(t.Context(), e)
	assert.ErrorIs(t, err, dialErr)

	publishErr := errors.New("channel closed")
	ch := new(MockChannel)
	ch.On("PublishWithContext", mock.Anything, "ex", "dish.prepared", false, false, mock.Anything).Return(publishErr)
	err = rabbitmq.NewEventPublisher(staticSource{ch: ch}, "ex", discardLogger()).Publish(t.Context(), e)
	assert.ErrorIs(t, err, publishErr)
}
