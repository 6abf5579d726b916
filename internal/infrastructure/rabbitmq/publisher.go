package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"foodorder/internal/config"
)

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Connection interface {
	Channel() (Channel, error)
	Close() error
}

type amqpConnection struct {
	conn *amqp.Connection
}

func (c *amqpConnection) Channel() (Channel, error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (c *amqpConnection) Close() error {
	return c.conn.Close()
}

// Publisher sends JSON events to a topic exchange, one short-lived channel per message.
type Publisher struct {
	conn     Connection
	exchange string
	logger   *zap.Logger
}

func Dial(cfg config.AMQPConfig, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dialing amqp: %w", err)
	}

	p := NewPublisher(&amqpConnection{conn: conn}, cfg.Exchange, logger)
	if err := p.declare(); err != nil {
		conn.Close()
		return nil, err
	}
	return p, nil
}

func NewPublisher(conn Connection, exchange string, logger *zap.Logger) *Publisher {
	return &Publisher{conn: conn, exchange: exchange, logger: logger}
}

func (p *Publisher) declare() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("opening channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declaring exchange %s: %w", p.exchange, err)
	}
	return nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("opening channel: %w", err)
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publishing %s: %w", routingKey, err)
	}

	p.logger.Debug("event published", zap.String("exchange", p.exchange), zap.String("routingKey", routingKey))
	return nil
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}
