package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "GENERATION_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation the constructors below build on.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
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

// Event type codes published by the generation and autosave paths.
const (
	TypeGenerationCompleted = "GENERATION_COMPLETED"
	TypeGenerationFailed    = "GENERATION_FAILED"
	TypeAutosaveFailed      = "AUTOSAVE_FAILED"
	TypeWorkspaceDeleted    = "WORKSPACE_DELETED"
)

func NewGenerationCompleted(userId, sessionId, workspaceId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeGenerationCompleted,
		Data: map[string]interface{}{
			"user_id":      userId.String(),
			"session_id":   sessionId.String(),
			"workspace_id": workspaceId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewGenerationFailed(userId, sessionId uuid.UUID, reason string) Event {
	return BaseEvent{
		Type: TypeGenerationFailed,
		Data: map[string]interface{}{
			"user_id":    userId.String(),
			"session_id": sessionId.String(),
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewAutosaveFailed(userId, sessionId uuid.UUID, stepNumber int) Event {
	return BaseEvent{
		Type: TypeAutosaveFailed,
		Data: map[string]interface{}{
			"user_id":     userId.String(),
			"session_id":  sessionId.String(),
			"step_number": stepNumber,
		},
		OccurredAt: time.Now(),
	}
}

func NewWorkspaceDeleted(userId, workspaceId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeWorkspaceDeleted,
		Data: map[string]interface{}{
			"user_id":      userId.String(),
			"workspace_id": workspaceId.String(),
		},
		OccurredAt: time.Now(),
	}
}
