package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByWorkspaceID filters sessions by their parent workspace
type ByWorkspaceID struct {
	WorkspaceID uuid.UUID
}

func (s ByWorkspaceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("workspace_id = ?", s.WorkspaceID)
}

// BySessionID filters steps/revisions by their owning session
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// BySessionIDs filters steps/revisions by a list of owning sessions
type BySessionIDs struct {
	SessionIDs []uuid.UUID
}

func (s BySessionIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id IN ?", s.SessionIDs)
}

// ByStepNumber filters a step ledger by step number
type ByStepNumber struct {
	StepNumber int
}

func (s ByStepNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("step_number = ?", s.StepNumber)
}

// ByToolkitType filters sessions by toolkit
type ByToolkitType struct {
	ToolkitType string
}

func (s ByToolkitType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("toolkit_type = ?", s.ToolkitType)
}
