package queue

import (
	"context"
	"encoding/json"
	"time"

	"jogofacil/core/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue names for booking lifecycle events. Consumers (push delivery,
// e-mail, analytics) live outside this service.
const (
	QueueNotifications = "notifications.dispatch"
)

// Publisher publishes domain events to RabbitMQ. Publishing is best-effort:
// callers log and continue on failure, the notification record in Postgres
// is the source of truth.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		logger.Error("rabbitmq: dial failed", "error", err)
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("rabbitmq: channel open failed", "error", err)
		_ = conn.Close()
		return nil, err
	}

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(QueueNotifications, true, false, false, false, nil); err != nil {
		logger.Error("rabbitmq: queue declare failed", "error", err)
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	logger.Info("RabbitMQ publisher initialized", "queue", QueueNotifications)
	return &Publisher{conn: conn, ch: ch}, nil
}

// Publish sends a JSON-encoded event to the named queue.
func (p *Publisher) Publish(ctx context.Context, queueName string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("rabbitmq: marshal event failed", "error", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		logger.Error("rabbitmq: publish failed", "error", err, "queue", queueName)
		return err
	}
	return nil
}

func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
