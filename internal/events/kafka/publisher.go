package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
)

// Publisher writes ledger events to a Kafka topic, keyed by user ID so that
// all events for one user land on the same partition in order.
type Publisher struct {
	writer *kafka.Writer
}

var _ portssvc.LedgerEventPublisher = (*Publisher)(nil)

// NewPublisher creates a Kafka-backed ledger event publisher.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// PublishLedgerEvent serializes and writes a single ledger event.
func (p *Publisher) PublishLedgerEvent(ctx context.Context, event domain.LedgerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event %s: %w", event.EventID, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("failed to write ledger event %s: %w", event.EventID, err)
	}
	return nil
}

// Close flushes pending messages and releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
