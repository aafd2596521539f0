package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes reaction events as persistent JSON messages on a durable queue.
type RabbitPublisher struct {
	conn  *amqp.Connection
	mu    sync.Mutex
	ch    channel
	queue string
}

var _ contract.IReactionEventPublisher = (*RabbitPublisher)(nil)

// NewRabbitPublisher dials url, opens a channel and declares queue.
func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	if queue == "" {
		queue = "like.queue"
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare RabbitMQ queue %s: %w", queue, err)
	}
	return &RabbitPublisher{conn: conn, ch: ch, queue: queue}, nil
}

func newPublisherOnChannel(ch channel, queue string) *RabbitPublisher {
	return &RabbitPublisher{ch: ch, queue: queue}
}

// PublishReaction sends event to the default exchange routed to the queue.
func (p *RabbitPublisher) PublishReaction(ctx context.Context, event entity.ReactionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode reaction event: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.At,
		Type:         "reaction." + string(event.Kind),
		Body:         body,
	}
	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg)
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
