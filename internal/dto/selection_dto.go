package dto

import (
	"github.com/google/uuid"
)

// Selection is the explicit "what am I looking at" pointer, one per user.
// Both fields are optional; a nil session with a set workspace means the
// workspace overview is active.
type Selection struct {
	WorkspaceId *uuid.UUID `json:"workspace_id"`
	SessionId   *uuid.UUID `json:"session_id"`
}

type SetSelectionRequest struct {
	WorkspaceId *uuid.UUID `json:"workspace_id"`
	SessionId   *uuid.UUID `json:"session_id"`
}
