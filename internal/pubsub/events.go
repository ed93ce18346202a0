// Package pubsub fans log entries and config file events out to the
// Bubble Tea update loop.
package pubsub

// EventType represents the type of event being published.
type EventType string

const (
	// LoggedEvent carries a formatted log line.
	LoggedEvent EventType = "logged"
	// ConfigChangedEvent signals that the watched config file was written.
	ConfigChangedEvent EventType = "config-changed"
	// WatchErrorEvent carries an error reported by the file watcher.
	WatchErrorEvent EventType = "watch-error"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type    EventType
	Payload T
}
