// Package pubsub is the in-process event backbone: the menus service
// publishes assembled snapshots, the logger publishes entries, and Bubble
// Tea models receive both through ListenCmd.
package pubsub

import "time"

// EventType labels what an event announces.
type EventType string

const (
	// CreatedEvent marks a newly produced record, such as a log entry.
	CreatedEvent EventType = "created"

	// ReloadedEvent carries a freshly assembled snapshot.
	ReloadedEvent EventType = "reloaded"
)

// Event is a published event with a typed payload and a publish timestamp.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
