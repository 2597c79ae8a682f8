package amqp_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	consumer "restaurant/internal/adapters/in/amqp"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReleaser struct{ mock.Mock }

func (m *MockReleaser) Handle(ctx context.Context, cmd commands.ReleaseTableForOrderCommand) (*table.Table, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

// acknowledger records how a delivery was settled.
type acknowledger struct {
	mu       sync.Mutex
	acked    int
	requeued int
	dropped  int
}

func (a *acknowledger) Ack(uint64, bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked++
	return nil
}

func (a *acknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if requeue {
		a.requeued++
	} else {
		a.dropped++
	}
	return nil
}

func (a *acknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *acknowledger) counts() (int, int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acked, a.requeued, a.dropped
}

func newConsumer(releaser consumer.TableReleaser) *consumer.PaymentConsumer {
	return consumer.NewPaymentConsumer(releaser, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func delivery(ack amqp.Acknowledger, body string) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: []byte(body)}
}

func TestPaymentConsumer_Handle(t *testing.T) {
	orderID, tableID := kernel.NewUUID(), kernel.NewUUID()
	valid := `{"order_id":"` + orderID.String() + `","table_id":"` + tableID.String() + `"}`

	tests := []struct {
		name       string
		body       string
		releaseErr error
		callsCmd   bool
		want       [3]int
	}{
		{name: "released", body: valid, callsCmd: true, want: [3]int{1, 0, 0}},
		{name: "malformed json", body: `{"order_id":`, want: [3]int{0, 0, 1}},
		{name: "bad order id", body: `{"order_id":"x","table_id":"` + tableID.String() + `"}`, want: [3]int{0, 0, 1}},
		{
			name:       "unknown order",
			body:       valid,
			releaseErr: errs.NewObjectNotFoundError("order", orderID.String()),
			callsCmd:   true,
			want:       [3]int{0, 0, 1},
		},
		{
			name:       "table mismatch",
			body:       valid,
			releaseErr: errs.NewValueIsInvalidError("table id"),
			callsCmd:   true,
			want:       [3]int{0, 0, 1},
		},
		{
			name:       "storage failure",
			body:       valid,
			releaseErr: errs.NewStorageError("commit transaction", errors.New("connection reset")),
			callsCmd:   true,
			want:       [3]int{0, 1, 0},
		},
		{
			name:       "concurrent update",
			body:       valid,
			releaseErr: errs.NewConflictError("table", tableID.String(), "modified concurrently"),
			callsCmd:   true,
			want:       [3]int{0, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			releaser := new(MockReleaser)
			releaser.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ReleaseTableForOrderCommand) bool {
				return cmd.OrderID().IsEqual(orderID) && cmd.TableID().IsEqual(tableID)
			})).Return(nil, tt.releaseErr)

			ack := &acknowledger{}
			newConsumer(releaser).Handle(t.Context(), delivery(ack, tt.body))

			acked, requeued, dropped := ack.counts()
			assert.Equal(t, tt.want, [3]int{acked, requeued, dropped})
			if tt.callsCmd {
				releaser.AssertExpectations(t)
			} else {
				releaser.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
			}
		})
	}
}

type chanSource struct {
	mu    sync.Mutex
	calls int
	chans []chan amqp.Delivery
}

func (s *chanSource) Consume(context.Context, string, string, int) (<-chan amqp.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls >= len(s.chans) {
		return nil, errors.New("no more subscriptions")
	}
	ch := s.chans[s.calls]
	s.calls++
	return ch, nil
}

func TestPaymentConsumer_RunStopsWithContext(t *testing.T) {
	orderID, tableID := kernel.NewUUID(), kernel.NewUUID()
	releaser := new(MockReleaser)
	releaser.On("Handle", mock.Anything, mock.Anything).Return(nil, nil)

	deliveries := make(chan amqp.Delivery, 1)
	ack := &acknowledger{}
	deliveries <- delivery(ack, `{"order_id":"`+orderID.String()+`","table_id":"`+tableID.String()+`"}`)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- newConsumer(releaser).Run(ctx, &chanSource{chans: []chan amqp.Delivery{deliveries}}, "payments", "svc", 1)
	}()

	require.Eventually(t, func() bool {
		acked, _, _ := ack.counts()
		return acked == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestPaymentConsumer_RunFailsWhenSubscribeFails(t *testing.T) {
	err := newConsumer(new(MockReleaser)).Run(t.Context(), &chanSource{}, "payments", "svc", 1)
	assert.ErrorContains(t, err, "subscribe to payments")
}
