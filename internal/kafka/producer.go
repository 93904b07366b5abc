package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer publishes messages to Kafka.
type Producer interface {
	// context.Context: standard Go practice for handling timeouts and cancellations.
	// If the context is cancelled before the message is sent,
	// the function should return an error and stop the process.
	Publish(ctx context.Context, msg Message) error

	// graceful shutdown of kafka network connection, flushes buffer
	Close() error
}

// KafkaProducer is a concrete implementation of the Producer interface
// using segmentio/kafka-go Writer.
type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer creates a new Kafka producer connected to the given brokers.
// It uses a hash-based partitioner to ensure all messages with the same key
// (the room ID) go to the same partition, preserving event order.
//
// writeTimeout bounds each write attempt. Room.mirror calls Publish
// synchronously while still holding the room's write lock, so a Kafka
// broker that stalls must not be allowed to stall a game mutation
// indefinitely; writeTimeout is the room's configured Kafka producer
// timeout (internal/config Config.KafkaProducerTimeout), not a fixed
// constant, so operators can tune it without a rebuild.
func NewKafkaProducer(brokers []string, clientID string, writeTimeout time.Duration) (*KafkaProducer, error) {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.Hash{}, // Key-based partitioning for event ordering

		// RequireOne waits for leader acknowledgment (durability vs performance)
		RequiredAcks: kafka.RequireOne,

		// Writer will handle transient failures with retries
		// Synchronous writes ensure events are persisted before returning
		MaxAttempts: 3,

		WriteTimeout: writeTimeout,

		// No specific Topic - set per message for flexibility
	}

	return &KafkaProducer{writer: writer}, nil
}

// Publish sends a message to Kafka.
// This is a synchronous operation - it waits for the leader to acknowledge.
// The context can be used to set timeouts or cancel the operation.
func (p *KafkaProducer) Publish(ctx context.Context, msg Message) error {
	// Convert our Message to kafka-go's Message format
	kafkaMsg := kafka.Message{
		Topic: msg.Topic,
		Key:   msg.Key,
		Value: msg.Value,
	}

	// WriteMessages is synchronous - waits for ack from Kafka
	return p.writer.WriteMessages(ctx, kafkaMsg)
}

// Close flushes any buffered messages and closes the Kafka connection.
// Should be called during graceful shutdown.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
