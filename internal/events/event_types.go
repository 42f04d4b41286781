package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/rescue-dispatch/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRescueCreated       EventType = "rescue_created"
	EventRescueStatusChanged EventType = "rescue_status_changed"
	EventRescueAssigned      EventType = "rescue_assigned"
	EventRescueQuoteAdded    EventType = "rescue_quote_added"
	EventRescueSynced        EventType = "rescue_synced"
	EventRescueSyncFailed    EventType = "rescue_sync_failed"
)

// Event represents a domain event emitted while working a rescue.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	RescueID  uuid.UUID `json:"rescue_id"`
	Handle    int       `json:"handle"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// RescueCreatedPayload payload.
type RescueCreatedPayload struct {
	Client   string          `json:"client"`
	System   string          `json:"system,omitempty"`
	Platform domain.Platform `json:"platform,omitempty"`
	CodeRed  bool            `json:"code_red"`
	Trigger  string          `json:"trigger"`
}

// RescueStatusChangedPayload payload.
type RescueStatusChangedPayload struct {
	OldStatus domain.RescueStatus  `json:"old_status"`
	NewStatus domain.RescueStatus  `json:"new_status"`
	Outcome   domain.RescueOutcome `json:"outcome,omitempty"`
}

// RescueAssignedPayload payload.
type RescueAssignedPayload struct {
	Assigned     []string `json:"assigned,omitempty"`
	Unidentified []string `json:"unidentified,omitempty"`
}

// RescueQuoteAddedPayload payload.
type RescueQuoteAddedPayload struct {
	Author  string `json:"author"`
	Preview string `json:"preview"`
}

// RescueSyncPayload payload.
type RescueSyncPayload struct {
	Operation string `json:"operation"`
	Error     string `json:"error,omitempty"`
}
