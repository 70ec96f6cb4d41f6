// Package pubsub provides a small typed publish/subscribe broker and the glue
// to receive its events inside a Bubble Tea update loop.
package pubsub

import "time"

// EventType represents the type of event being published.
type EventType string

const (
	// ReloadedEvent is published when a watched resource was re-read.
	ReloadedEvent EventType = "reloaded"

	// FailedEvent is published when re-reading a watched resource failed.
	FailedEvent EventType = "failed"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Err       error
	Timestamp time.Time
}
