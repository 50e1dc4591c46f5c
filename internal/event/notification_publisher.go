package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/google/uuid"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

// PushNotiQueue is the queue push workers consume from. Messages are durable
// so a worker restart loses nothing.
const PushNotiQueue = "push_noti_events"

// PushNotificationEvent is the message delivered to push workers when a
// notification should reach a device.
type PushNotificationEvent struct {
	UserID      uuid.UUID               `json:"user_id"`
	DiagnosisID *uuid.UUID              `json:"diagnosis_id,omitempty"`
	Type        models.NotificationType `json:"type"`
	Title       string                  `json:"title"`
	Body        string                  `json:"body"`
	CreatedAt   time.Time               `json:"created_at"`
}

// Publisher is implemented by anything able to push a notification event.
// The service layer depends on this so tests can swap in a recorder and a
// deployment without RabbitMQ can run with a no-op.
type Publisher interface {
	PublishNotification(ctx context.Context, event PushNotificationEvent) error
}

// NotificationPublisher publishes notification events to RabbitMQ.
type NotificationPublisher struct {
	conn *RabbitMQConnection
}

func NewNotificationPublisher(conn *RabbitMQConnection) *NotificationPublisher {
	return &NotificationPublisher{conn: conn}
}

// PublishNotification sends the event to the push queue, which
// ConnectRabbitMQ declared when the channel was opened.
func (p *NotificationPublisher) PublishNotification(ctx context.Context, event PushNotificationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",            // exchange
		PushNotiQueue, // routing key (queue name)
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notification event: %w", err)
	}

	slog.Info("notification event published",
		"queue", PushNotiQueue,
		"type", event.Type,
		"user_id", event.UserID,
	)

	return nil
}

// NoopPublisher satisfies Publisher when RabbitMQ is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishNotification(ctx context.Context, event PushNotificationEvent) error {
	return nil
}
