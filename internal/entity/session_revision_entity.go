package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionRevision is one append-only autosave history row, written by the
// revision consumer after a debounced step write lands.
type SessionRevision struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	StepNumber int
	Content    string
	CreatedAt  time.Time
}
