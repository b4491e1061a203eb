package dto

import (
	"time"

	"github.com/google/uuid"
)

// Notice levels/types for the transient notice channel. Notices are not
// persisted; a missed notice is simply gone, matching the dismissible
// toast semantics of the UI.
const (
	NoticeLevelInfo  = "info"
	NoticeLevelError = "error"

	NoticeTypeAutosaveFailed      = "autosave_failed"
	NoticeTypeGenerationCompleted = "generation_completed"
	NoticeTypeGenerationFailed    = "generation_failed"
)

type Notice struct {
	Type        string     `json:"type"`
	Level       string     `json:"level"`
	Message     string     `json:"message"`
	UserId      uuid.UUID  `json:"user_id"`
	SessionId   *uuid.UUID `json:"session_id,omitempty"`
	WorkspaceId *uuid.UUID `json:"workspace_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
