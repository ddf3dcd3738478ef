package events

import (
	"context"
	"errors"
	"testing"

	"spicery-be/internal/logger"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch, exchange: "spice.orders"}

	ctx := logger.WithRequestID(context.Background(), "req-9")
	err := p.Publish(ctx, Event{Type: TypeOrderStatusChanged, OrderID: "ORD-1", Status: "Shipped", PreviousStatus: "Processing"})
	require.NoError(t, err)

	assert.Equal(t, "spice.orders", ch.exchange)
	assert.Equal(t, TypeOrderStatusChanged, ch.key)
	assert.Equal(t, "req-9", ch.msg.CorrelationId)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)

	var got Event
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, "Processing", got.PreviousStatus)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	p := &AMQPPublisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "x"}

	err := p.Publish(context.Background(), Event{Type: TypeOrderCreated, OrderID: "ORD-1"})
	assert.ErrorContains(t, err, "failed to publish order.created")
}

func TestAMQPPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch}

	assert.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
