package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWorkspaceRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
}

type CreateWorkspaceResponse struct {
	Id uuid.UUID `json:"id"`
}

// WorkspaceSessionSummary is the nested session view used by the workspace
// sidebar; full step content is only loaded on ShowSession.
type WorkspaceSessionSummary struct {
	Id           uuid.UUID  `json:"id"`
	ToolkitType  string     `json:"toolkit_type"`
	ToolkitName  string     `json:"toolkit_name"`
	ThinkingLens string     `json:"thinking_lens"`
	HasSentence  bool       `json:"has_sentence"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type GetAllWorkspacesResponse struct {
	Id          uuid.UUID                  `json:"id"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   *time.Time                 `json:"updated_at"`
	Sessions    []*WorkspaceSessionSummary `json:"sessions"`
}

type ShowWorkspaceResponse struct {
	Id          uuid.UUID                  `json:"id"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   *time.Time                 `json:"updated_at"`
	Sessions    []*WorkspaceSessionSummary `json:"sessions"`
}

type UpdateWorkspaceRequest struct {
	Id          uuid.UUID
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
}

type UpdateWorkspaceResponse struct {
	Id uuid.UUID `json:"id"`
}
