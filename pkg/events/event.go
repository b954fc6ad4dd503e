package events

import (
	"context"
	"time"
)

// Event types carried on the bus. The NATS subject is "events.<TYPE>".
const (
	LeadSubmitted = "LEAD_SUBMITTED"
	PostPublished = "POST_PUBLISHED"
	JobPublished  = "JOB_PUBLISHED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "LEAD_SUBMITTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher sends events to the bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// String returns the payload value under key, or "" when it is absent or not a string.
func (e BaseEvent) String(key string) string {
	s, _ := e.Data[key].(string)
	return s
}
