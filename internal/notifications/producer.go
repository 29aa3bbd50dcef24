package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"skybook/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes booking lifecycle events. Publishing is best
// effort from the caller's point of view: a failed publish never fails
// the booking it describes.
type Producer interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
	PublishBookingCancelled(ctx context.Context, event BookingCancelledEvent) error
	Close() error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logger.Logger
}

// NewKafkaProducer connects a synchronous producer with full-ack
// durability for booking events.
func NewKafkaProducer(brokers []string, topic string) (Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &kafkaProducer{
		producer: producer,
		topic:    topic,
		logger:   logger.GetDefault(),
	}, nil
}

func (p *kafkaProducer) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	return p.publish(ctx, event.BookingRef, "booking.confirmed", event)
}

func (p *kafkaProducer) PublishBookingCancelled(ctx context.Context, event BookingCancelledEvent) error {
	return p.publish(ctx, event.BookingRef, "booking.cancelled", event)
}

// publish sends one event keyed by booking reference so all events for
// a booking land on the same partition in order.
func (p *kafkaProducer) publish(ctx context.Context, key, eventType string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventType)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	p.logger.InfoContext(ctx, "Published booking event",
		"event_type", eventType,
		"booking_ref", key,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.producer.Close()
}

// noopProducer satisfies Producer when Kafka is disabled, so callers
// never branch on a nil producer.
type noopProducer struct{}

func NewNoopProducer() Producer {
	return &noopProducer{}
}

func (noopProducer) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	return nil
}

func (noopProducer) PublishBookingCancelled(ctx context.Context, event BookingCancelledEvent) error {
	return nil
}

func (noopProducer) Close() error { return nil }
