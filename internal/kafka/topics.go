package kafka

// Topic names.
// These represent durable Kafka logs, NOT event semantics.
const (
	// RoomEventsTopic is the mirror of a room's EventLog events (all
	// but begin-vote requests). It is outbound-only: nothing in this process consumes it
	// back, it exists for downstream observability and replay tooling.
	RoomEventsTopic = "room.events"
)

// RoomKey returns the Kafka partition key for a given room. All events
// for the same room MUST use the same key to preserve ordering.
func RoomKey(roomID string) []byte {
	return []byte(roomID)
}
