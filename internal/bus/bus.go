// Package bus mirrors a room's EventLog to Kafka for downstream
// observability and replay. It is one-way: nothing in this process
// reads these messages back, so there is no consumer here, only the
// producer side of internal/kafka.
package bus

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mafia-room/internal/events"
	"mafia-room/internal/kafka"
)

// Mirror publishes room events to Kafka. Published messages carry no ID
// of their own; a UUID is generated only to tag a failed-publish log
// line.
type Mirror struct {
	producer kafka.Producer
	roomID   string
	log      *zap.Logger
}

// NewMirror builds a Mirror for roomID, publishing through producer.
func NewMirror(producer kafka.Producer, roomID string, log *zap.Logger) *Mirror {
	return &Mirror{producer: producer, roomID: roomID, log: log}
}

// Publish marshals event and writes it to the room events topic. A
// publish failure is logged and swallowed, so the mirror never fails a
// room mutation. The write is synchronous: Publish returns only once the
// producer does, and the Kafka producer bounds each write attempt with
// its write timeout.
func (m *Mirror) Publish(ctx context.Context, event any) {
	payload, err := events.Marshal(event)
	if err != nil {
		m.log.Error("bus: failed to marshal event", zap.Error(err), zap.String("room_id", m.roomID))
		return
	}

	msg := kafka.Message{
		Topic: kafka.RoomEventsTopic,
		Key:   kafka.RoomKey(m.roomID),
		Value: payload,
	}

	if err := m.producer.Publish(ctx, msg); err != nil {
		m.log.Warn("bus: failed to publish event",
			zap.Error(err),
			zap.String("room_id", m.roomID),
			zap.String("message_id", uuid.NewString()),
		)
	}
}

// Close releases the underlying producer's connection.
func (m *Mirror) Close() error {
	return m.producer.Close()
}
