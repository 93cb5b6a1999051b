package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/SscSPs/litally_fintech_api/internal/core/ports/gateways"
	"github.com/segmentio/kafka-go"
)

const kafkaWriteTimeout = 10 * time.Second

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to one topic, keyed by account so that the
// events of an account stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

var _ gateways.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a publisher over a synchronous kafka.Writer.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: kafkaWriteTimeout,
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			logger.Error(fmt.Sprintf(msg, args...), slog.String("component", "kafka_writer"))
		}),
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

func kafkaMessage(event domain.TransactionEvent) (kafka.Message, error) {
	body, err := encode(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(event.AccountID),
		Value: body,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte(contentTypeJSON)},
			{Key: "event-type", Value: []byte(event.RoutingKey())},
			{Key: "event-id", Value: []byte(event.EventID)},
		},
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.TransactionEvent) error {
	msg, err := kafkaMessage(event)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, kafkaWriteTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("failed to produce message to kafka: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	p.logger.Info("Kafka producer closed")
	return nil
}
