package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	portsevents "github.com/SscSPs/vas_funding_ledger/internal/core/ports/events"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes funding events to a Kafka topic, keyed by merchant so that one
// merchant's events stay ordered within a partition.
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a publisher for topic on the given brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			WriteTimeout: 5 * time.Second,
		},
	}
}

var _ portsevents.FundingEventPublisher = (*Publisher)(nil)

func (p *Publisher) PublishFundingEvent(ctx context.Context, event domain.FundingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal funding event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.MerchantID, 10)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "funding_ref", Value: []byte(event.FundingRef)},
		},
		Time: event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s for %s: %w", event.Type, event.FundingRef, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
