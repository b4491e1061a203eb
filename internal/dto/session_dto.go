package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	WorkspaceId uuid.UUID `json:"workspace_id" validate:"required"`
	ToolkitType string    `json:"toolkit_type" validate:"required"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type StepResponse struct {
	StepNumber int        `json:"step_number"`
	Label      string     `json:"label"`
	Content    string     `json:"content"`
	Structured bool       `json:"structured"`
	IsComplete bool       `json:"is_complete"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type SentenceResponse struct {
	Content  string `json:"content"`
	Source   string `json:"source"`
	IsLocked bool   `json:"is_locked"`
}

type ShowSessionResponse struct {
	Id                 uuid.UUID        `json:"id"`
	WorkspaceId        uuid.UUID        `json:"workspace_id"`
	ToolkitType        string           `json:"toolkit_type"`
	ToolkitName        string           `json:"toolkit_name"`
	ThinkingLens       string           `json:"thinking_lens"`
	Steps              []*StepResponse  `json:"steps"`
	SentenceOfTruth    SentenceResponse `json:"sentence_of_truth"`
	Insights           []string         `json:"insights"`
	NecessaryMoves     []string         `json:"necessary_moves"`
	CompleteSteps      int              `json:"complete_steps"`
	ReadyForGeneration bool             `json:"ready_for_generation"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          *time.Time       `json:"updated_at"`
}

// UpdateStepRequest carries only the content; the session id and step number
// ride in the path. Empty content is legal and clears the step.
type UpdateStepRequest struct {
	Content string `json:"content"`
}

type UpdateStepResponse struct {
	Id         uuid.UUID `json:"id"`
	StepNumber int       `json:"step_number"`
	Queued     bool      `json:"queued"`
}

type SetLensRequest struct {
	Id           uuid.UUID
	ThinkingLens string `json:"thinking_lens" validate:"required"`
}

type SetLensResponse struct {
	Id           uuid.UUID `json:"id"`
	ThinkingLens string    `json:"thinking_lens"`
}

type SetSentenceRequest struct {
	Id      uuid.UUID
	Content string `json:"content" validate:"required"`
}

type SetSentenceResponse struct {
	Id       uuid.UUID        `json:"id"`
	Sentence SentenceResponse `json:"sentence_of_truth"`
}

type ToggleLockResponse struct {
	Id       uuid.UUID `json:"id"`
	IsLocked bool      `json:"is_locked"`
}

// StepRevisionMessage is published on the internal bus after a step write
// lands; the revision consumer persists it as autosave history.
type StepRevisionMessage struct {
	SessionId  uuid.UUID `json:"session_id"`
	StepNumber int       `json:"step_number"`
	Content    string    `json:"content"`
}
