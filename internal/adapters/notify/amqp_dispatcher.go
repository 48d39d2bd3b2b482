package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/rabbitmq/amqp091-go"
)

// AMQPDispatcher publishes notification events to a durable RabbitMQ
// exchange. Delivery is advisory; a publish failure is logged and swallowed
// so the financial transaction that triggered it is never affected.
type AMQPDispatcher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

// Ensure AMQPDispatcher implements portssvc.NotificationDispatcher
var _ portssvc.NotificationDispatcher = (*AMQPDispatcher)(nil)

// NewAMQPDispatcher connects to the broker and declares the exchange, queue
// and binding.
func NewAMQPDispatcher(url, exchangeName, queueName string) (*AMQPDispatcher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	d := &AMQPDispatcher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := d.setup(); err != nil {
		d.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return d, nil
}

func (d *AMQPDispatcher) setup() error {
	err := d.channel.ExchangeDeclare(
		d.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = d.channel.QueueDeclare(
		d.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = d.channel.QueueBind(
		d.queueName,    // queue name
		d.queueName,    // routing key (same as queue name for direct exchange)
		d.exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Dispatch publishes the event as a persistent JSON message.
func (d *AMQPDispatcher) Dispatch(ctx context.Context, event portssvc.NotificationEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to marshal notification event",
			"error", err,
			"eventType", event.EventType)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = d.channel.PublishWithContext(
		ctx,
		d.exchangeName, // exchange
		d.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to publish notification event",
			"error", err,
			"eventType", event.EventType,
			"subjectID", event.SubjectID)
		return
	}

	slog.DebugContext(ctx, "Published notification event",
		"eventType", event.EventType,
		"subjectKind", event.SubjectKind,
		"subjectID", event.SubjectID)
}

func (d *AMQPDispatcher) Close() error {
	if d.channel != nil {
		d.channel.Close()
	}
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}
