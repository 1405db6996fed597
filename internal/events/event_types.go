package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/trip-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventTripCreated    EventType = "trip_created"
	EventTripDeleted    EventType = "trip_deleted"
	EventGuideLinked    EventType = "guide_linked"
)

// Event represents a domain event emitted by services. Actor is the
// username that triggered the event, empty for system actions.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New builds an event with a fresh ID and timestamp.
func New(eventType EventType, actor string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// TripCreatedPayload payload.
type TripCreatedPayload struct {
	TripID   int64           `json:"trip_id"`
	Name     string          `json:"name"`
	Category domain.Category `json:"category"`
	GuideID  *int64          `json:"guide_id,omitempty"`
}

// TripDeletedPayload payload.
type TripDeletedPayload struct {
	TripID int64 `json:"trip_id"`
}

// GuideLinkedPayload payload.
type GuideLinkedPayload struct {
	TripID  int64 `json:"trip_id"`
	GuideID int64 `json:"guide_id"`
}
