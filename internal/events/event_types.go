package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventImageUploaded  EventType = "image_uploaded"
	EventImageDeleted   EventType = "image_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Username  string      `json:"username"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}

// ImageUploadedPayload payload.
type ImageUploadedPayload struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// ImageDeletedPayload payload.
type ImageDeletedPayload struct {
	PublicID string `json:"public_id"`
}
