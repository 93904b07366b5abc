// Package events defines the wire contract for the room's event mirror.
//
// Event type strings are stable and must not be runtime-configurable.
// Timestamp fields are always Unix time in milliseconds. The mirror is
// outbound-only: the room never receives commands back over this
// channel, so there is no Deserialize/route-by-type entry point here,
// only Marshal.
package events

import "encoding/json"

// Marshal encodes any of the event structs in this package to JSON.
func Marshal(event any) ([]byte, error) {
	return json.Marshal(event)
}
