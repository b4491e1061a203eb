package entity

import (
	"time"

	"github.com/google/uuid"
)

// Sentence source values. "generated" means the current sentence came from the
// generation endpoint; "manual" means the user edited it directly. An empty
// content string is the unset state regardless of source.
const (
	SentenceSourceGenerated = "generated"
	SentenceSourceManual    = "manual"
)

// SentenceOfTruth is the single canonical synthesized statement of a session.
// IsLocked forbids replacement by regeneration; manual edits go through an
// explicit unlock first.
type SentenceOfTruth struct {
	Content  string
	Source   string
	IsLocked bool
}

type Session struct {
	Id              uuid.UUID
	WorkspaceId     uuid.UUID
	UserId          uuid.UUID
	ToolkitType     string
	ThinkingLens    string
	SentenceOfTruth SentenceOfTruth
	Insights        []string
	NecessaryMoves  []string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
