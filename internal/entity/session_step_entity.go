package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionStep is one row of a session's step ledger. StepNumber is unique per
// session; Content is always a string (structured sub-data is serialized JSON
// inside it, see pkg/stepcontent).
type SessionStep struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	StepNumber int
	Content    string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
