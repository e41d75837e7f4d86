package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/Reflow/internal/domain"
)

// MessageType — тип сообщения в очереди.
type MessageType string

// Типы сообщений.
const (
	MessageTypeRunCompleted MessageType = "run.completed"
	MessageTypeRunFailed    MessageType = "run.failed"
)

// Publisher публикует сообщения в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Message — сообщение для публикации.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// RunCompletedPayload — payload для сообщения об успешном пересчёте.
type RunCompletedPayload struct {
	RunID          uuid.UUID `json:"run_id"`
	WorkOrderCount int       `json:"work_order_count"`
	ChangeCount    int       `json:"change_count"`
	Changes        []string  `json:"changes"`
}

// RunFailedPayload — payload для сообщения о неудачном пересчёте.
type RunFailedPayload struct {
	RunID  uuid.UUID `json:"run_id"`
	Reason string    `json:"reason"`
}

// Publish публикует сообщение в указанный exchange с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(exchange),   // exchange
			string(routingKey), // routing key
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // сообщение переживёт рестарт RabbitMQ
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", exchange,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)

		return nil
	})
}

// PublishRunCompleted публикует событие об успешном пересчёте.
// Потребитель: Notifier.
func (p *Publisher) PublishRunCompleted(ctx context.Context, run *domain.ReflowRun) error {
	var changes []string
	if run.Result != nil {
		changes = run.Result.Changes
	}

	msg := &Message{
		ID:   uuid.New().String(),
		Type: MessageTypeRunCompleted,
		Payload: RunCompletedPayload{
			RunID:          run.ID,
			WorkOrderCount: run.WorkOrderCount,
			ChangeCount:    run.ChangeCount,
			Changes:        changes,
		},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, ExchangeRuns, RoutingKeyCompleted, msg)
}

// PublishRunFailed публикует событие о неудачном пересчёте.
// Потребитель: Notifier.
func (p *Publisher) PublishRunFailed(ctx context.Context, run *domain.ReflowRun) error {
	msg := &Message{
		ID:   uuid.New().String(),
		Type: MessageTypeRunFailed,
		Payload: RunFailedPayload{
			RunID:  run.ID,
			Reason: run.Error,
		},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, ExchangeRuns, RoutingKeyFailed, msg)
}
