package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Event names the frontend subscribes to.
const (
	DatabaseRelocated = "events:database:relocated"
	ImportCompleted   = "events:import:completed"
	ExportCompleted   = "events:export:completed"
)

// AppEvent is the payload emitted to the frontend for backend lifecycle
// notifications.
type AppEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewAppEvent(eventType EventType, message string) AppEvent {
	return AppEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}
