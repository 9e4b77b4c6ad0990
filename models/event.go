package models

import "time"

// EventType names a change notification published by the service layer.
type EventType string

const (
	EventSessionStarted    EventType = "session_started"
	EventSessionEnded      EventType = "session_ended"
	EventProfileChanged    EventType = "profile_changed"
	EventCredentialCorrupt EventType = "credential_corrupt"
)

// Event is delivered to subscribers after a mutation has been committed.
type Event struct {
	Type      EventType `json:"type"`
	ProfileID string    `json:"profile_id,omitempty"`
	DeviceID  string    `json:"device_id,omitempty"`
	At        time.Time `json:"at"`
}
