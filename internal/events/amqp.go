package events

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/dtroode/salon-server/internal/config"
	"github.com/dtroode/salon-server/internal/model"
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var _ Sink = (*AMQPSink)(nil)

// AMQPSink publishes events to a topic exchange with the event type as the
// routing key.
type AMQPSink struct {
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
}

// NewAMQPSink dials RabbitMQ and declares a durable topic exchange.
func NewAMQPSink(cfg config.AMQP) (*AMQPSink, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &AMQPSink{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

func (s *AMQPSink) Publish(ctx context.Context, events []model.OutboxEvent) error {
	for _, e := range events {
		headers := amqp.Table{
			HeaderEventID:   e.ID.String(),
			HeaderEventType: string(e.Type),
		}
		otel.GetTextMapPropagator().Inject(eventContext(ctx, e), tableCarrier(headers))

		err := s.ch.PublishWithContext(ctx, s.exchange, string(e.Type), false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    e.ID.String(),
			Type:         string(e.Type),
			Timestamp:    e.CreatedAt,
			Headers:      headers,
			Body:         e.Payload,
		})
		if err != nil {
			return fmt.Errorf("failed to publish %s: %w", e.Type, err)
		}
	}
	return nil
}

func (s *AMQPSink) Close() error {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

type tableCarrier amqp.Table

var _ propagation.TextMapCarrier = tableCarrier(nil)

func (c tableCarrier) Get(key string) string {
	v, _ := c[key].(string)
	return v
}

func (c tableCarrier) Set(key, value string) {
	c[key] = value
}

func (c tableCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
