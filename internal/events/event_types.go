package events

import (
	"time"

	"github.com/spec-kit/intern-dashboard/internal/domain"
)

// EventType enumerates session lifecycle events.
type EventType string

const (
	EventSessionHydrated  EventType = "session_hydrated"
	EventSessionLoggedIn  EventType = "session_logged_in"
	EventSessionLoggedOut EventType = "session_logged_out"
	EventSessionEvicted   EventType = "session_evicted"
)

// Event is emitted by a credential store.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// HydratedPayload reports what hydration found.
type HydratedPayload struct {
	HasCredential bool   `json:"has_credential"`
	LoadError     string `json:"load_error,omitempty"`
}

// LoggedInPayload identifies who signed in, as far as the credential tells.
type LoggedInPayload struct {
	SubjectID string      `json:"subject_id,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
}
