package rabbitmq

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable, autoDelete, internal, noWait, args).Error(0)
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *MockChannel) Close() error {
	return nil
}

type MockConnection struct {
	mock.Mock
}

func (m *MockConnection) Channel() (Channel, error) {
	args := m.Called()
	if ch := args.Get(0); ch != nil {
		return ch.(Channel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConnection) Close() error {
	return m.Called().Error(0)
}

func TestPublisher_Publish(t *testing.T) {
	conn := &MockConnection{}
	ch := &MockChannel{}
	conn.On("Channel").Return(ch, nil)

	body := []byte(`{"orderId":1234}`)
	ch.On("PublishWithContext", "foodorder.events", "order.placed", false, false, mock.MatchedBy(func(msg amqp.Publishing) bool {
		return msg.ContentType == "application/json" && string(msg.Body) == string(body) && msg.DeliveryMode == amqp.Persistent
	})).Return(nil)

	p := NewPublisher(conn, "foodorder.events", zap.NewNop())
	err := p.Publish(context.Background(), "order.placed", body)

	assert.NoError(t, err)
	ch.AssertExpectations(t)
}

func TestPublisher_Publish_ChannelError(t *testing.T) {
	conn := &MockConnection{}
	conn.On("Channel").Return(nil, errors.New("connection closed"))

	p := NewPublisher(conn, "foodorder.events", zap.NewNop())
	err := p.Publish(context.Background(), "order.placed", []byte(`{}`))

	assert.Error(t, err)
}

func TestPublisher_Declare(t *testing.T) {
	conn := &MockConnection{}
	ch := &MockChannel{}
	conn.On("Channel").Return(ch, nil)
	ch.On("ExchangeDeclare", "foodorder.events", "topic", true, false, false, false, mock.Anything).Return(nil)

	p := NewPublisher(conn, "foodorder.events", zap.NewNop())

	assert.NoError(t, p.declare())
	ch.AssertExpectations(t)
}
