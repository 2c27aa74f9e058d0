// Package pubsub provides a small generic publish/subscribe broker used to
// carry watcher and log events into the Bubble Tea update loop.
package pubsub

import "time"

// EventType classifies a published event.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
)

// Event is a published payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
