package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Session struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	ToolkitType     string         `gorm:"type:varchar(64);not null"`
	ThinkingLens    string         `gorm:"type:varchar(64);not null;default:'automatic'"`
	SentenceOfTruth string         `gorm:"type:text"`
	SentenceSource  string         `gorm:"type:varchar(16)"`
	SentenceLocked  bool           `gorm:"not null;default:false"`
	Insights        datatypes.JSON `gorm:"type:jsonb"`
	NecessaryMoves  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Session) TableName() string {
	return "sessions"
}
