package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/SscSPs/litally_fintech_api/internal/core/ports/gateways"
	"github.com/SscSPs/litally_fintech_api/internal/platform/logging"
	"github.com/rabbitmq/amqp091-go"
)

const rabbitDialTimeout = 10 * time.Second

// RabbitMQPublisher publishes events to a durable topic exchange, routed by
// domain.TransactionEvent.RoutingKey.
type RabbitMQPublisher struct {
	exchange string

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

var _ gateways.EventPublisher = (*RabbitMQPublisher)(nil)

// NewRabbitMQPublisher dials the broker and declares the exchange.
func NewRabbitMQPublisher(amqpURL, exchange string) (*RabbitMQPublisher, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}
	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(rabbitDialTimeout)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	p := &RabbitMQPublisher{exchange: exchange, conn: conn}
	if err := p.reopenChannel(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("invalid AMQP url: %w", err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

// reopenChannel must be called with mu held or before the publisher is shared.
func (p *RabbitMQPublisher) reopenChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", p.exchange, err)
	}
	p.channel = ch
	return nil
}

// Publish retries once on a fresh channel if the current one has been closed by the broker.
func (p *RabbitMQPublisher) Publish(ctx context.Context, event domain.TransactionEvent) error {
	body, err := encode(event)
	if err != nil {
		return err
	}
	msg := amqp091.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.EventID,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, event.RoutingKey(), false, false, msg)
	if err == nil {
		return nil
	}
	logging.FromContext(ctx).Warn("RabbitMQ publish failed, reopening channel",
		slog.String("exchange", p.exchange),
		slog.String("routing_key", event.RoutingKey()),
		slog.String("error", err.Error()))
	if reopenErr := p.reopenChannel(); reopenErr != nil {
		return errors.Join(err, reopenErr)
	}
	if err := p.channel.PublishWithContext(ctx, p.exchange, event.RoutingKey(), false, false, msg); err != nil {
		return fmt.Errorf("failed to publish to rabbitmq: %w", err)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
